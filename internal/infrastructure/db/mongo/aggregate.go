package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/devcollab/devcollab-api/internal/core/domain"
)

type monthBucketDoc struct {
	ID struct {
		Year  int `bson:"year"`
		Month int `bson:"month"`
	} `bson:"_id"`
	Count int64 `bson:"count"`
}

// countsByMonth groups every document of col by the year and month of its
// created_at field, ascending. Empty months produce no bucket.
func countsByMonth(ctx context.Context, col *mongo.Collection) ([]domain.MonthBucket, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: bson.D{
				{Key: "year", Value: bson.D{{Key: "$year", Value: "$created_at"}}},
				{Key: "month", Value: bson.D{{Key: "$month", Value: "$created_at"}}},
			}},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$sort", Value: bson.D{
			{Key: "_id.year", Value: 1},
			{Key: "_id.month", Value: 1},
		}}},
	}

	cursor, err := col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("counts by month (%s): %w", col.Name(), err)
	}
	defer cursor.Close(ctx)

	var docs []monthBucketDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("counts by month (%s): decode: %w", col.Name(), err)
	}

	buckets := make([]domain.MonthBucket, 0, len(docs))
	for _, d := range docs {
		buckets = append(buckets, domain.MonthBucket{Year: d.ID.Year, Month: d.ID.Month, Count: d.Count})
	}
	return buckets, nil
}
