package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/openseva/grievance/internal/domain"
)

// ErrNotFound is returned when a requested document does not exist.
var ErrNotFound = errors.New("not found")

// complaintsCollection is the MongoDB collection holding complaints.
const complaintsCollection = "complaints"

// ComplaintFilter narrows List results. Zero values mean "no filter";
// the boolean filters are tri-state, nil meaning "either".
type ComplaintFilter struct {
	Category    domain.Category
	Priority    domain.Priority
	Status      domain.Status
	Email       string
	HasImage    *bool
	IsDuplicate *bool
	Page        int
	PageSize    int
}

// DefaultPageSize bounds List results when no page size is requested.
const DefaultPageSize = 20

// MaxPageSize is the hard upper bound on a single page.
const MaxPageSize = 100

// ComplaintsRepository persists complaints in MongoDB.
type ComplaintsRepository struct {
	coll *mongo.Collection
}

// NewComplaintsRepository creates a repository over the complaints collection.
func NewComplaintsRepository(client *Client) *ComplaintsRepository {
	return &ComplaintsRepository{
		coll: client.Database().Collection(complaintsCollection),
	}
}

// EnsureIndexes creates the indexes the query paths rely on.
func (r *ComplaintsRepository) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "category", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("failed to create complaint indexes: %w", err)
	}
	return nil
}

// Create inserts a new complaint, assigning its ID and timestamps.
func (r *ComplaintsRepository) Create(ctx context.Context, c *domain.Complaint) error {
	now := time.Now().UTC()
	c.ID = primitive.NewObjectID().Hex()
	c.CreatedAt = now
	c.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, c); err != nil {
		return fmt.Errorf("failed to insert complaint: %w", err)
	}
	return nil
}

// GetByID fetches a single complaint. Returns ErrNotFound when absent.
func (r *ComplaintsRepository) GetByID(ctx context.Context, id string) (*domain.Complaint, error) {
	var c domain.Complaint
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch complaint: %w", err)
	}
	return &c, nil
}

// ListRecentByEmail returns the submitter's complaints created at or after
// since, newest first, capped at limit. This is the duplicate candidate
// window.
func (r *ComplaintsRepository) ListRecentByEmail(ctx context.Context, email string, since time.Time, limit int) ([]domain.Complaint, error) {
	filter := bson.M{
		"email":      email,
		"created_at": bson.M{"$gte": since},
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent complaints: %w", err)
	}
	defer cursor.Close(ctx)

	var results []domain.Complaint
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("failed to decode recent complaints: %w", err)
	}
	return results, nil
}

// List returns a page of complaints matching the filter, newest first,
// along with the total match count.
func (r *ComplaintsRepository) List(ctx context.Context, f ComplaintFilter) ([]domain.Complaint, int64, error) {
	filter := bson.M{}
	if f.Category != "" {
		filter["category"] = f.Category
	}
	if f.Priority != "" {
		filter["priority"] = f.Priority
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.Email != "" {
		filter["email"] = f.Email
	}
	if f.HasImage != nil {
		filter["image_url"] = imageURLFilter(*f.HasImage)
	}
	if f.IsDuplicate != nil {
		filter["is_duplicate"] = *f.IsDuplicate
	}

	page := f.Page
	if page < 1 {
		page = 1
	}
	pageSize := f.PageSize
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count complaints: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((page - 1) * pageSize)).
		SetLimit(int64(pageSize))

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query complaints: %w", err)
	}
	defer cursor.Close(ctx)

	var results []domain.Complaint
	if err := cursor.All(ctx, &results); err != nil {
		return nil, 0, fmt.Errorf("failed to decode complaints: %w", err)
	}
	return results, total, nil
}

// UpdateStatus transitions a complaint to the given status and returns the
// updated document. Returns ErrNotFound when the complaint does not exist.
func (r *ComplaintsRepository) UpdateStatus(ctx context.Context, id string, status domain.Status) (*domain.Complaint, error) {
	update := bson.M{"$set": bson.M{
		"status":     status,
		"updated_at": time.Now().UTC(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var c domain.Complaint
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update complaint status: %w", err)
	}
	return &c, nil
}

// imageURLFilter matches documents with (or without) an attached image.
// Unset and empty image_url both count as "no image".
func imageURLFilter(hasImage bool) bson.M {
	if hasImage {
		return bson.M{"$exists": true, "$nin": bson.A{"", nil}}
	}
	return bson.M{"$in": bson.A{"", nil}}
}

// Stats aggregates complaint counts for the analytics endpoint.
func (r *ComplaintsRepository) Stats(ctx context.Context) (*domain.Stats, error) {
	stats := &domain.Stats{
		ByCategory: make(map[string]int64),
		ByPriority: make(map[string]int64),
		ByStatus:   make(map[string]int64),
	}

	total, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to count complaints: %w", err)
	}
	stats.Total = total

	duplicates, err := r.coll.CountDocuments(ctx, bson.M{"is_duplicate": true})
	if err != nil {
		return nil, fmt.Errorf("failed to count duplicates: %w", err)
	}
	stats.Duplicates = duplicates

	withImages, err := r.coll.CountDocuments(ctx, bson.M{"image_url": imageURLFilter(true)})
	if err != nil {
		return nil, fmt.Errorf("failed to count complaints with images: %w", err)
	}
	stats.WithImages = withImages

	groupings := []struct {
		field string
		dest  map[string]int64
	}{
		{"category", stats.ByCategory},
		{"priority", stats.ByPriority},
		{"status", stats.ByStatus},
	}

	for _, g := range groupings {
		pipeline := mongo.Pipeline{
			{{Key: "$group", Value: bson.D{
				{Key: "_id", Value: "$" + g.field},
				{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
			}}},
		}

		cursor, err := r.coll.Aggregate(ctx, pipeline)
		if err != nil {
			return nil, fmt.Errorf("failed to aggregate by %s: %w", g.field, err)
		}

		var rows []struct {
			ID    string `bson:"_id"`
			Count int64  `bson:"count"`
		}
		if err := cursor.All(ctx, &rows); err != nil {
			return nil, fmt.Errorf("failed to decode %s aggregation: %w", g.field, err)
		}
		for _, row := range rows {
			g.dest[row.ID] = row.Count
		}
	}

	if total > 0 {
		stats.ResolutionRate = float64(stats.ByStatus[string(domain.StatusResolved)]) / float64(total)
	}

	return stats, nil
}
