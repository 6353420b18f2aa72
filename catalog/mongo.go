package catalog

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"tripdeck/models"
)

// MongoLoader reads inventory from one database: hotels and sightseeing
// documents carry their city inline.
type MongoLoader struct {
	DB *mongo.Database
}

func NewMongoLoader(db *mongo.Database) *MongoLoader {
	return &MongoLoader{DB: db}
}

type hotelDoc struct {
	City         string `bson:"city"`
	models.Hotel `bson:",inline"`
}

type sightseeingDoc struct {
	City               string `bson:"city"`
	models.Sightseeing `bson:",inline"`
}

// inserted keeps documents in insertion order, which is the catalog order
// the tier fallback depends on.
var inserted = options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})

func (l *MongoLoader) Load(ctx context.Context) (*models.Catalog, error) {
	if l.DB == nil {
		return nil, ErrEmptySource
	}
	c := models.EmptyCatalog()

	var hotels []hotelDoc
	if err := findAll(ctx, l.DB.Collection("hotels"), &hotels); err != nil {
		return nil, fmt.Errorf("load hotels: %w", err)
	}
	for _, h := range hotels {
		c.HotelData[h.City] = append(c.HotelData[h.City], h.Hotel)
	}

	var spots []sightseeingDoc
	if err := findAll(ctx, l.DB.Collection("sightseeing"), &spots); err != nil {
		return nil, fmt.Errorf("load sightseeing: %w", err)
	}
	for _, s := range spots {
		c.SightseeingData[s.City] = append(c.SightseeingData[s.City], s.Sightseeing)
	}

	if err := findAll(ctx, l.DB.Collection("vehicles"), &c.VehicleData); err != nil {
		return nil, fmt.Errorf("load vehicles: %w", err)
	}
	if err := findAll(ctx, l.DB.Collection("packages"), &c.Packages); err != nil {
		return nil, fmt.Errorf("load packages: %w", err)
	}
	return normalize(c), nil
}

func findAll[T any](ctx context.Context, coll *mongo.Collection, out *[]T) error {
	cursor, err := coll.Find(ctx, bson.M{}, inserted)
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)
	return cursor.All(ctx, out)
}
