package mongodb

import (
	"context"
	"time"

	"dispatch/config"
	"dispatch/internal/domain/entity"
	"dispatch/internal/domain/repository"
	"dispatch/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// registrationRepository implements repository.RegistrationRepository.
// It holds no mutable state of its own; every operation maps onto a single
// atomic command against the backing collection.
type registrationRepository struct {
	// primary serves writes and strongly consistent reads.
	primary *mongo.Collection

	// secondary serves eventually consistent list reads; results may lag
	// behind the caller's own writes.
	secondary *mongo.Collection

	// leaseTTL > 0 enables reclaiming of stale claims; zero preserves the
	// at-most-once claim where an unresolved claim strands the document.
	leaseTTL time.Duration
}

// NewRegistrationRepository is the constructor for registrationRepository.
func NewRegistrationRepository(db *mongo.Database, cfg *config.Config) repository.RegistrationRepository {
	name := model.RegistrationModel{}.CollectionName()

	var leaseTTL time.Duration
	if cfg.Resolver != nil {
		leaseTTL = cfg.Resolver.LeaseTTL
	}

	return &registrationRepository{
		primary: db.Collection(name),
		secondary: db.Collection(name,
			options.Collection().SetReadPreference(readpref.SecondaryPreferred())),
		leaseTTL: leaseTTL,
	}
}

// Save atomically upserts the registration keyed by (token, authId).
func (repo *registrationRepository) Save(ctx context.Context, reg *entity.Registration) (*entity.Registration, bool, error) {
	// Endpoints are assigned exclusively through SaveEndpoint; rejecting
	// here instead of silently stripping keeps the misuse visible.
	if reg.Endpoint != "" {
		return nil, false, repository.ErrEndpointNotAllowed
	}

	now := time.Now().UTC().Truncate(time.Millisecond)
	filter := keyFilter(reg.Token, reg.AuthID)

	res, err := repo.primary.UpdateOne(ctx, filter, saveUpdate(reg, now),
		options.Update().SetUpsert(true))
	if err != nil {
		return nil, false, errors.Wrap(err, "failed to save registration")
	}

	created := res.UpsertedCount > 0

	var regM model.RegistrationModel
	if err := repo.primary.FindOne(ctx, filter).Decode(&regM); err != nil {
		return nil, false, errors.Wrap(err, "failed to read back saved registration")
	}

	return toRegistrationDomain(&regM), created, nil
}

// SaveEndpoint assigns the delivery endpoint to the document matching
// token. A missing document is not exceptional: endpoint assignment races
// against unregistration, and losing that race returns false.
func (repo *registrationRepository) SaveEndpoint(ctx context.Context, token, endpoint string) (bool, error) {
	res, err := repo.primary.UpdateOne(ctx, bson.M{"token": token}, endpointUpdate(endpoint))
	if err != nil {
		return false, errors.Wrap(err, "failed to save endpoint")
	}

	return res.MatchedCount > 0, nil
}

// FindByAuthID returns all registrations for authId, most recently updated
// first.
func (repo *registrationRepository) FindByAuthID(ctx context.Context, authID string, consistency repository.ReadConsistency) ([]*entity.Registration, error) {
	coll := repo.primary
	if consistency == repository.ConsistencyEventual {
		coll = repo.secondary
	}

	cursor, err := coll.Find(ctx, bson.M{"authId": authID},
		options.Find().SetSort(byUpdatedDesc()))
	if err != nil {
		return nil, errors.Wrap(err, "failed to find registrations by authId")
	}

	return decodeRegistrations(ctx, cursor)
}

// FindIncomplete claims every eligible registration in one multi-document
// update, then fetches the claimed batch. The claim step is what keeps two
// overlapping resolver invocations from processing the same document: each
// unclaimed document ends up with exactly one batch's marker.
func (repo *registrationRepository) FindIncomplete(ctx context.Context) ([]*entity.Registration, error) {
	marker := entity.NewClaimMarker()
	now := time.Now().UTC().Truncate(time.Millisecond)

	if _, err := repo.primary.UpdateMany(ctx, claimFilter(now, repo.leaseTTL), claimUpdate(marker, now)); err != nil {
		// A failed claim must not be treated as "some were claimed".
		return nil, errors.Wrap(err, "failed to claim incomplete registrations")
	}

	cursor, err := repo.primary.Find(ctx, bson.M{"endpoint": marker},
		options.Find().SetSort(byUpdatedDesc()))
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch claimed registrations")
	}

	return decodeRegistrations(ctx, cursor)
}

// RemoveToken deletes at most one document matching token. When several
// authIds share the token, an arbitrary match is removed.
func (repo *registrationRepository) RemoveToken(ctx context.Context, token string) (bool, error) {
	res, err := repo.primary.DeleteOne(ctx, bson.M{"token": token})
	if err != nil {
		return false, errors.Wrap(err, "failed to remove registration")
	}

	return res.DeletedCount > 0, nil
}

// EnsureIndexes declares the collection's secondary indexes. The device
// indexes are sparse: only documents carrying device metadata appear in
// them. None of the indexes is unique; (token, authId) uniqueness rests on
// the Save upsert filter alone.
func (repo *registrationRepository) EnsureIndexes(ctx context.Context) error {
	sparse := options.Index().SetSparse(true)

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "token", Value: 1}}},
		{Keys: bson.D{{Key: "updated", Value: -1}}},
		{Keys: bson.D{{Key: "authId", Value: 1}}},
		{Keys: bson.D{{Key: "device.os", Value: 1}}, Options: sparse},
		{Keys: bson.D{{Key: "device.appVersion", Value: 1}}, Options: sparse},
		{Keys: bson.D{{Key: "device.model", Value: 1}}, Options: sparse},
	}

	if _, err := repo.primary.Indexes().CreateMany(ctx, indexes); err != nil {
		return errors.Wrap(err, "failed to create registration indexes")
	}

	return nil
}

func decodeRegistrations(ctx context.Context, cursor *mongo.Cursor) ([]*entity.Registration, error) {
	var regModels []*model.RegistrationModel
	if err := cursor.All(ctx, &regModels); err != nil {
		return nil, errors.Wrap(err, "failed to decode registrations")
	}

	regs := make([]*entity.Registration, 0, len(regModels))
	for _, regM := range regModels {
		regs = append(regs, toRegistrationDomain(regM))
	}

	return regs, nil
}

// --- Mapper Functions ---

// toRegistrationDomain converts a BSON RegistrationModel to a domain Registration entity.
func toRegistrationDomain(data *model.RegistrationModel) *entity.Registration {
	if data == nil {
		return nil
	}

	reg := &entity.Registration{
		ID:        data.ID.Hex(),
		Token:     data.Token,
		AuthID:    data.AuthID,
		Endpoint:  data.Endpoint,
		Created:   data.Created,
		Updated:   data.Updated,
		ClaimedAt: data.ClaimedAt,
	}

	if data.Device != nil {
		reg.Device = &entity.Device{
			OS:         entity.ParseDeviceOS(data.Device.OS),
			OSVersion:  data.Device.OSVersion,
			AppVersion: data.Device.AppVersion,
			Model:      data.Device.Model,
		}
	}

	return reg
}
