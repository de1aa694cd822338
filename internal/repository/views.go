package repository

import (
	"context"
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/sumire/projecthub/internal/domain"
)

// ViewRepository assembles denormalized read projections by joining the
// collaborator, project, user, and location collections. All pipelines are
// rooted at the collaborator collection so membership narrows the result
// before any project data is touched.
type ViewRepository struct {
	collaborators *mongo.Collection
}

// NewViewRepository creates a new ViewRepository.
func NewViewRepository(db *mongo.Database) *ViewRepository {
	return &ViewRepository{collaborators: db.Collection(collCollaborators)}
}

// ProjectSummaries returns one row per live project the user collaborates
// on. Archived and deleted projects are filtered out; the optional search
// narrows by case-insensitive substring on the project name.
func (r *ViewRepository) ProjectSummaries(ctx context.Context, userID primitive.ObjectID, q domain.ProjectListQuery) ([]domain.ProjectSummary, error) {
	match := bson.M{
		"project.is_deleted":  false,
		"project.is_archived": false,
	}
	if q.Search != "" {
		match["project.name"] = bson.M{"$regex": regexp.QuoteMeta(q.Search), "$options": "i"}
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"user_id": userID}}},
		{{Key: "$group", Value: bson.M{"_id": "$project_id"}}},
	}
	pipeline = append(pipeline, joinProject(match)...)
	pipeline = append(pipeline, bson.D{{Key: "$project", Value: bson.M{
		"_id":        0,
		"id":         "$project._id",
		"name":       "$project.name",
		"owner":      "$owner.name",
		"location":   "$location.local_name",
		"started_at": "$project.started_at",
		"created_at": "$project.created_at",
	}}})
	if sort := sortDoc(q.Sort); sort != nil {
		pipeline = append(pipeline, bson.D{{Key: "$sort", Value: sort}})
	}
	// created_at only exists to feed the sort stage.
	pipeline = append(pipeline, bson.D{{Key: "$project", Value: bson.M{"created_at": 0}}})

	cursor, err := r.collaborators.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate project summaries: %w", err)
	}

	summaries := make([]domain.ProjectSummary, 0)
	if err := cursor.All(ctx, &summaries); err != nil {
		return nil, fmt.Errorf("decode project summaries: %w", err)
	}
	return summaries, nil
}

// ProjectDetail returns the joined single-project view for a collaborator.
// Archived projects stay visible here; deleted ones do not. ErrNotFound is
// reported when the join produces no row.
func (r *ViewRepository) ProjectDetail(ctx context.Context, userID, projectID primitive.ObjectID) (*domain.ProjectDetail, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"user_id": userID, "project_id": projectID}}},
		{{Key: "$group", Value: bson.M{"_id": "$project_id"}}},
	}
	pipeline = append(pipeline, joinProject(bson.M{"project.is_deleted": false})...)
	pipeline = append(pipeline, bson.D{{Key: "$project", Value: bson.M{
		"_id":         0,
		"name":        "$project.name",
		"description": "$project.description",
		"owner_name":  "$owner.name",
		"location":    "$location.local_name",
		"started_at":  "$project.started_at",
		"ended_at":    "$project.ended_at",
		"is_archived": "$project.is_archived",
	}}})

	cursor, err := r.collaborators.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate project detail: %w", err)
	}

	var details []domain.ProjectDetail
	if err := cursor.All(ctx, &details); err != nil {
		return nil, fmt.Errorf("decode project detail: %w", err)
	}
	if len(details) == 0 {
		return nil, domain.ErrNotFound
	}
	return &details[0], nil
}

// CollaboratorsByProject returns the joined member list of a project.
func (r *ViewRepository) CollaboratorsByProject(ctx context.Context, projectID primitive.ObjectID) ([]domain.CollaboratorView, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"project_id": projectID}}},
		{{Key: "$lookup", Value: bson.M{
			"from": collUsers, "localField": "user_id", "foreignField": "_id", "as": "user",
		}}},
		{{Key: "$unwind", Value: "$user"}},
		{{Key: "$lookup", Value: bson.M{
			"from": collPermissions, "localField": "permission_id", "foreignField": "_id", "as": "permission",
		}}},
		{{Key: "$unwind", Value: "$permission"}},
		{{Key: "$project", Value: bson.M{
			"_id":        0,
			"id":         "$_id",
			"user_name":  "$user.name",
			"email":      "$user.email",
			"permission": "$permission.name",
		}}},
	}

	cursor, err := r.collaborators.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate collaborators: %w", err)
	}

	views := make([]domain.CollaboratorView, 0)
	if err := cursor.All(ctx, &views); err != nil {
		return nil, fmt.Errorf("decode collaborators: %w", err)
	}
	return views, nil
}

// joinProject is the shared lookup chain: membership group → project →
// owner user → location.
func joinProject(projectMatch bson.M) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$lookup", Value: bson.M{
			"from": collProjects, "localField": "_id", "foreignField": "_id", "as": "project",
		}}},
		{{Key: "$unwind", Value: "$project"}},
		{{Key: "$match", Value: projectMatch}},
		{{Key: "$lookup", Value: bson.M{
			"from": collUsers, "localField": "project.owner", "foreignField": "_id", "as": "owner",
		}}},
		{{Key: "$unwind", Value: "$owner"}},
		{{Key: "$lookup", Value: bson.M{
			"from": collLocations, "localField": "project.location", "foreignField": "_id", "as": "location",
		}}},
		{{Key: "$unwind", Value: "$location"}},
	}
}

// sortDoc maps a sort key onto an explicit comparator document. The
// enumeration is closed; unknown keys are rejected before this point.
func sortDoc(key domain.SortKey) bson.D {
	switch key {
	case domain.SortNameAsc:
		return bson.D{{Key: "name", Value: 1}}
	case domain.SortNameDesc:
		return bson.D{{Key: "name", Value: -1}}
	case domain.SortNewest:
		return bson.D{{Key: "created_at", Value: -1}}
	case domain.SortOldest:
		return bson.D{{Key: "created_at", Value: 1}}
	default:
		return nil
	}
}
