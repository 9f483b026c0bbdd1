// Package model contains the BSON-specific document structs for the
// registrations collection.
package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RegistrationModel is the BSON document for the 'registrations' collection.
// The logical key is (token, authId); the collection carries no unique index
// for it; the Save upsert filter enforces uniqueness.
type RegistrationModel struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Token     string             `bson:"token"`
	AuthID    string             `bson:"authId"`
	Device    *DeviceModel       `bson:"device,omitempty"`
	Endpoint  string             `bson:"endpoint,omitempty"`
	Created   time.Time          `bson:"created"`
	Updated   time.Time          `bson:"updated"`
	ClaimedAt time.Time          `bson:"claimedAt,omitempty"`
}

// DeviceModel is the embedded device metadata subdocument.
type DeviceModel struct {
	OS         string `bson:"os"`
	OSVersion  string `bson:"osVersion"`
	AppVersion string `bson:"appVersion"`
	Model      string `bson:"model"`
}

// CollectionName is the registrations collection name.
func (RegistrationModel) CollectionName() string {
	return "registrations"
}
