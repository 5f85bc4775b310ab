package repository

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"movierec/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRatingRepository es el backend alternativo de ratings (RATINGS_BACKEND=mongo).
// El upsert es atómico por documento, así que no necesita mutex propio.
type MongoRatingRepository struct {
	col *mongo.Collection
}

func NewMongoRatingRepository(db *mongo.Database) *MongoRatingRepository {
	return &MongoRatingRepository{col: db.Collection("ratings")}
}

// EnsureIndexes crea el índice único (user_id, movie_id).
func (r *MongoRatingRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: colUserID, Value: 1}, {Key: colMovieID, Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("%w: mongo create index: %v", ErrStorage, err)
	}
	return nil
}

// UpsertRating deja un único documento por par, con los ids en forma canónica (string).
// Los documentos importados con ids numéricos del mismo par se reemplazan.
func (r *MongoRatingRepository) UpsertRating(ctx context.Context, userID, movieID string, rating float64) error {
	userID = models.NormalizeID(userID)
	movieID = models.NormalizeID(movieID)

	if _, err := r.col.DeleteMany(ctx, legacyPairFilter(userID, movieID)); err != nil {
		return fmt.Errorf("%w: mongo delete legacy rating: %v", ErrStorage, err)
	}
	_, err := r.col.UpdateOne(ctx,
		bson.M{colUserID: userID, colMovieID: movieID},
		ratingUpdate(rating, time.Now().UnixNano()),
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("%w: mongo upsert rating: %v", ErrStorage, err)
	}
	return nil
}

// legacyPairFilter: mismo par, pero no guardado como (string, string) canónico.
func legacyPairFilter(userID, movieID string) bson.M {
	return bson.M{"$and": bson.A{
		ratingKeyFilter(userID, movieID),
		bson.M{"$nor": bson.A{bson.M{colUserID: userID, colMovieID: movieID}}},
	}}
}

// ratingKeyFilter matchea el par (user_id, movie_id) en cualquier representación.
func ratingKeyFilter(userID, movieID string) bson.M {
	return bson.M{colUserID: idMatch(userID), colMovieID: idMatch(movieID)}
}

// idMatch: un id entero puede estar guardado como string o como número
// (Mongo compara int32/int64/double por valor).
func idMatch(id string) any {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return id
	}
	return bson.M{"$in": bson.A{id, n}}
}

func ratingUpdate(rating float64, ts int64) bson.M {
	return bson.M{"$set": bson.M{
		colRating: rating,
		// guardamos epoch (int64)
		"timestamp": ts,
	}}
}

func (r *MongoRatingRepository) ListRatings(ctx context.Context) ([]models.Rating, error) {
	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("%w: mongo find ratings: %v", ErrStorage, err)
	}
	defer cur.Close(ctx)

	out := []models.Rating{}
	for cur.Next(ctx) {
		var raw bson.M
		if err := cur.Decode(&raw); err != nil {
			return nil, fmt.Errorf("%w: mongo decode rating: %v", ErrStorage, err)
		}
		out = append(out, models.Rating{
			UserID:  models.NormalizeID(asString(raw[colUserID])),
			MovieID: models.NormalizeID(asString(raw[colMovieID])),
			Rating:  asFloat64(raw[colRating]),
		})
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("%w: mongo cursor: %v", ErrStorage, err)
	}
	return out, nil
}

// Version = cantidad de documentos + timestamp más reciente; cambia con cada upsert.
func (r *MongoRatingRepository) Version(ctx context.Context) (string, error) {
	n, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return "", fmt.Errorf("%w: mongo count ratings: %v", ErrStorage, err)
	}

	var last bson.M
	err = r.col.FindOne(ctx, bson.M{},
		options.FindOne().SetSort(bson.D{{Key: "timestamp", Value: -1}}).SetProjection(bson.M{"timestamp": 1}),
	).Decode(&last)
	if err == mongo.ErrNoDocuments {
		return fmt.Sprintf("%d-0", n), nil
	}
	if err != nil {
		return "", fmt.Errorf("%w: mongo last rating: %v", ErrStorage, err)
	}
	return fmt.Sprintf("%d-%d", n, asInt64(last["timestamp"])), nil
}

// helpers de casteo seguro (los ids importados pueden venir como números)
func asString(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return ""
	}
}

func asInt64(v any) int64 {
	switch x := v.(type) {
	case int32:
		return int64(x)
	case int64:
		return x
	case float64:
		return int64(x)
	default:
		return 0
	}
}

func asFloat64(v any) float64 {
	switch x := v.(type) {
	case int32:
		return float64(x)
	case int64:
		return float64(x)
	case float64:
		return x
	default:
		return 0
	}
}
