package mongodb

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"SceneScript/internal/scriptgen/domain"
)

const defaultCollectionName = "script_artifact"

var errNilCollection = errors.New("mongodb artifact collection is nil")

type ArtifactRepository struct {
	coll *mongo.Collection
}

func NewArtifactRepository(db *mongo.Database) *ArtifactRepository {
	return &ArtifactRepository{
		coll: db.Collection(defaultCollectionName),
	}
}

func (r *ArtifactRepository) Get(ctx context.Context, id string) (*domain.Artifact, error) {
	if r == nil || r.coll == nil {
		return nil, domain.ErrSystemUnavailable.WithCause(errNilCollection)
	}

	var a domain.Artifact
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&a)
	if err == nil {
		return &a, nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrArtifactNotFound.WithData("id", id)
	}
	return nil, domain.ErrSystemUnavailable.WithData("id", id).WithCause(err)
}

func (r *ArtifactRepository) Save(ctx context.Context, a domain.Artifact) error {
	if r == nil || r.coll == nil {
		return domain.ErrSystemUnavailable.WithCause(errNilCollection)
	}

	_, err := r.coll.ReplaceOne(
		ctx,
		bson.M{"_id": a.ID},
		a,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return domain.ErrSystemUnavailable.WithData("id", a.ID).WithCause(err)
	}
	return nil
}
