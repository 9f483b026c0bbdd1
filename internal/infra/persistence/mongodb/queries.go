package mongodb

import (
	"time"

	"dispatch/internal/domain/entity"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// keyFilter matches the single document for a (token, authId) pair. This
// filter is the only thing enforcing the pair's uniqueness: the collection
// deliberately carries no unique index for it, because a unique index would
// change failure behavior under concurrent inserts with partially
// overlapping keys.
func keyFilter(token, authID string) bson.M {
	return bson.M{"token": token, "authId": authID}
}

// saveUpdate builds the atomic upsert document for Save. created is
// write-once via $setOnInsert; updated refreshes on every call; device is
// replaced wholesale when supplied and left untouched otherwise.
func saveUpdate(reg *entity.Registration, now time.Time) bson.M {
	set := bson.M{"updated": now}
	if reg.Device != nil {
		set["device"] = bson.M{
			"os":         string(reg.Device.OS),
			"osVersion":  reg.Device.OSVersion,
			"appVersion": reg.Device.AppVersion,
			"model":      reg.Device.Model,
		}
	}

	return bson.M{
		"$set": set,
		"$setOnInsert": bson.M{
			"token":   reg.Token,
			"authId":  reg.AuthID,
			"created": now,
		},
	}
}

// endpointUpdate assigns only the endpoint field. It must not touch
// created, updated, authId, or device.
func endpointUpdate(endpoint string) bson.M {
	return bson.M{"$set": bson.M{"endpoint": endpoint}}
}

// claimFilter matches every registration eligible for claiming: device
// metadata present and endpoint absent. Device-less documents cannot be
// resolved and are never claimed. With leaseTTL > 0 the filter also
// reclaims marker-valued endpoints whose claim is older than the lease.
func claimFilter(now time.Time, leaseTTL time.Duration) bson.M {
	unclaimed := bson.M{
		"device":   bson.M{"$exists": true},
		"endpoint": bson.M{"$exists": false},
	}

	if leaseTTL <= 0 {
		return unclaimed
	}

	expired := bson.M{
		"device":    bson.M{"$exists": true},
		"endpoint":  primitive.Regex{Pattern: "^" + entity.ClaimMarkerPrefix},
		"claimedAt": bson.M{"$lt": now.Add(-leaseTTL)},
	}

	return bson.M{"$or": bson.A{unclaimed, expired}}
}

// claimUpdate stamps the claimed documents with the batch marker and the
// claim time.
func claimUpdate(marker string, now time.Time) bson.M {
	return bson.M{"$set": bson.M{"endpoint": marker, "claimedAt": now}}
}

// byUpdatedDesc sorts most recently touched first.
func byUpdatedDesc() bson.D {
	return bson.D{{Key: "updated", Value: -1}}
}
