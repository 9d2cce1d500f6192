package mongodb

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"SceneScript/internal/scriptgen/domain"
	"SceneScript/modules/kit/tracex"
)

func TestArtifact_BSON字段(t *testing.T) {
	a := domain.Artifact{
		ID:       "run-1",
		Strategy: domain.StrategySplit,
		Container: &domain.Container{
			ClassName: domain.ClassScript,
			Name:      "Tower",
			Disabled:  true,
			Children:  []*domain.Container{{ClassName: domain.ClassModuleScript, Name: "Tower", Source: "return 1\n"}},
		},
	}
	raw, err := bson.Marshal(a)
	require.NoError(t, err)

	var m bson.M
	require.NoError(t, bson.Unmarshal(raw, &m))
	assert.Equal(t, "run-1", m["_id"])
	assert.Equal(t, "split", m["strategy"])

	var back domain.Artifact
	require.NoError(t, bson.Unmarshal(raw, &back))
	require.NotNil(t, back.Container)
	assert.Equal(t, 2, back.Container.Count())
}

func TestArtifactRepository_nil集合(t *testing.T) {
	var r *ArtifactRepository
	_, err := r.Get(context.Background(), "x")
	assert.True(t, errors.Is(err, domain.ErrSystemUnavailable))
	assert.True(t, errors.Is(r.Save(context.Background(), domain.Artifact{}), domain.ErrSystemUnavailable))
}

// 需要本地 mongod：SCENESCRIPT_TEST_MONGO_URI=mongodb://127.0.0.1:27017
func TestArtifactRepository_真实库(t *testing.T) {
	uri := os.Getenv("SCENESCRIPT_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("SCENESCRIPT_TEST_MONGO_URI not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	require.NoError(t, err)
	defer func() { _ = client.Disconnect(context.Background()) }()

	db := client.Database("scenescript_test")
	defer func() { _ = db.Drop(context.Background()) }()
	r := NewArtifactRepository(db)

	id := tracex.NewRunID()
	_, err = r.Get(ctx, id)
	assert.True(t, errors.Is(err, domain.ErrArtifactNotFound))

	require.NoError(t, r.Save(ctx, domain.Artifact{ID: id, Root: "Workspace.Tower", CreatedAt: time.Now().UTC().Truncate(time.Millisecond)}))
	got, err := r.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Workspace.Tower", got.Root)
}
