package adapters

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func TestGoalDocument_Decode(t *testing.T) {
	created := time.Date(2024, 2, 1, 8, 30, 0, 0, time.UTC)
	raw, err := bson.Marshal(bson.M{
		"_id":       "g1",
		"user":      "alice",
		"text":      "learn x",
		"createdAt": created,
		"updatedAt": created,
	})
	require.NoError(t, err)

	var doc goalDocument
	require.NoError(t, bson.Unmarshal(raw, &doc))

	g := doc.toEntity()
	assert.Equal(t, "g1", g.ID)
	assert.Equal(t, "alice", g.UserID)
	assert.Equal(t, "learn x", g.Text)
	assert.True(t, g.CreatedAt.Equal(created))
}

func TestOldestFirst(t *testing.T) {
	sort := oldestFirst()
	require.Len(t, sort, 2)
	assert.Equal(t, "createdAt", sort[0].Key)
	assert.Equal(t, 1, sort[0].Value)
}
