package validators

import "go.mongodb.org/mongo-driver/bson"

// ReservationValidator mirrors the application-level checks loosely. Times
// stay strings because the domain compares them as minutes since midnight,
// not as BSON dates.
var ReservationValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"name",
			"date",
			"start_time",
			"end_time",
			"venue",
			"group",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "long",
			},

			"name": bson.M{
				"bsonType":  "string",
				"minLength": 1,
			},

			"date": bson.M{
				"bsonType":  "string",
				"minLength": 1,
			},

			"start_time": bson.M{
				"bsonType": "string",
				"pattern":  "^[0-9]{1,2}:[0-9]{2}$",
			},

			"end_time": bson.M{
				"bsonType": "string",
				"pattern":  "^[0-9]{1,2}:[0-9]{2}$",
			},

			"venue": bson.M{
				"bsonType":  "string",
				"minLength": 1,
			},

			"group": bson.M{
				"bsonType":  "string",
				"minLength": 1,
			},

			"resource_count": bson.M{
				"bsonType": "int",
				"minimum":  0,
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
