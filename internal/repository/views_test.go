package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/sumire/projecthub/internal/domain"
)

func TestSortDoc(t *testing.T) {
	tests := []struct {
		key  domain.SortKey
		want bson.D
	}{
		{domain.SortUnspecified, nil},
		{domain.SortNameAsc, bson.D{{Key: "name", Value: 1}}},
		{domain.SortNameDesc, bson.D{{Key: "name", Value: -1}}},
		{domain.SortNewest, bson.D{{Key: "created_at", Value: -1}}},
		{domain.SortOldest, bson.D{{Key: "created_at", Value: 1}}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, sortDoc(tt.key), "key %q", tt.key)
	}
}
