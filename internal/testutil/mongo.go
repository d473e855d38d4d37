package testutil

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"goal_backend/internal/config"
	platformmongo "goal_backend/internal/platform/mongo"
)

// MongoURIEnv names the variable that enables the document store tests.
const MongoURIEnv = "MONGO_URI"

// NewMongoDatabase connects to $MONGO_URI and returns a fresh database that
// is dropped when the test ends. The test is skipped when MONGO_URI is unset.
func NewMongoDatabase(t testing.TB) *mongo.Database {
	t.Helper()

	uri := os.Getenv(MongoURIEnv)
	if uri == "" {
		t.Skipf("%s not set; skipping document store test", MongoURIEnv)
	}

	name := "goal_backend_test_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	ctx := context.Background()
	client, err := platformmongo.NewClient(ctx, config.Mongo{URI: uri, DBName: name}, 5*time.Second)
	require.NoError(t, err, "failed to connect to %s", MongoURIEnv)

	database := client.Database(name)
	t.Cleanup(func() {
		_ = database.Drop(context.Background())
		_ = client.Disconnect(context.Background())
	})
	return database
}
