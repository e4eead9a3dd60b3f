package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/cse-sg/absence-service/internal/domain"
)

// mongoCollection implements a collection gateway on mongo-driver v2.
type mongoCollection[T any, PT doc[T]] struct {
	name     string
	col      *mongo.Collection
	notifier *Notifier
	clock    func() time.Time
}

// NewMongoStaffStore builds the staff_list gateway on db.
func NewMongoStaffStore(db *mongo.Database, notifier *Notifier) StaffStore {
	return newMongoCollection[domain.StaffRecord, *domain.StaffRecord](db, ColStaff, notifier)
}

// NewMongoAbsenceStore builds the absences gateway on db.
func NewMongoAbsenceStore(db *mongo.Database, notifier *Notifier) AbsenceStore {
	return newMongoCollection[domain.AbsenceRecord, *domain.AbsenceRecord](db, ColAbsences, notifier)
}

func newMongoCollection[T any, PT doc[T]](db *mongo.Database, name string, notifier *Notifier) *mongoCollection[T, PT] {
	return &mongoCollection[T, PT]{
		name:     name,
		col:      db.Collection(name),
		notifier: notifier,
		clock:    time.Now,
	}
}

func (c *mongoCollection[T, PT]) List(ctx context.Context, sorts ...Sort) ([]PT, error) {
	return c.GetWhere(ctx, nil, sorts...)
}

func (c *mongoCollection[T, PT]) GetWhere(ctx context.Context, filters []Filter, sorts ...Sort) ([]PT, error) {
	opts := options.Find()
	if len(sorts) > 0 {
		order := bson.D{}
		for _, s := range sorts {
			dir := 1
			if s.Desc {
				dir = -1
			}
			order = append(order, bson.E{Key: s.Field, Value: dir})
		}
		opts.SetSort(order)
	}

	cursor, err := c.col.Find(ctx, toBSON(filters), opts)
	if err != nil {
		return nil, wrapMongoError(err)
	}
	defer cursor.Close(ctx)

	results := []PT{}
	for cursor.Next(ctx) {
		var v T
		if err := cursor.Decode(&v); err != nil {
			return nil, err
		}
		results = append(results, PT(&v))
	}
	if err := cursor.Err(); err != nil {
		return nil, wrapMongoError(err)
	}
	return results, nil
}

func (c *mongoCollection[T, PT]) GetByID(ctx context.Context, id string) (PT, error) {
	var v T
	err := c.col.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&v)
	if err != nil {
		return nil, wrapMongoError(err)
	}
	return PT(&v), nil
}

func (c *mongoCollection[T, PT]) Insert(ctx context.Context, rec PT) error {
	if rec.DocumentID() == "" {
		rec.SetDocumentID(uuid.NewString())
	}
	rec.StampCreated(c.clock().UTC())

	if _, err := c.col.InsertOne(ctx, rec); err != nil {
		return wrapMongoError(err)
	}
	c.notifier.Notify(c.name)
	return nil
}

func (c *mongoCollection[T, PT]) Update(ctx context.Context, id string, fields map[string]any) error {
	res, err := c.col.UpdateOne(ctx, bson.D{{Key: "_id", Value: id}}, bson.M{"$set": fields})
	if err != nil {
		return wrapMongoError(err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	c.notifier.Notify(c.name)
	return nil
}

func (c *mongoCollection[T, PT]) Delete(ctx context.Context, id string) error {
	res, err := c.col.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return wrapMongoError(err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	c.notifier.Notify(c.name)
	return nil
}

func (c *mongoCollection[T, PT]) Subscribe(ctx context.Context, filters []Filter, sorts ...Sort) (<-chan []PT, func(), error) {
	pings, stop := c.notifier.Listen(c.name)

	// Forward backend change-stream events into the same ping channel so
	// writes from other clients are observed. Change streams require a
	// replica set; on a standalone server only in-process writes are live.
	wctx, cancelWatch := context.WithCancel(context.Background())
	if stream, err := c.col.Watch(wctx, mongo.Pipeline{}); err == nil {
		go func() {
			defer stream.Close(wctx)
			for stream.Next(wctx) {
				select {
				case pings <- struct{}{}:
				default:
				}
			}
		}()
	}

	out, release := subscribeLoop(ctx, pings, func() {
		cancelWatch()
		stop()
	}, func(qctx context.Context) ([]PT, error) {
		return c.GetWhere(qctx, filters, sorts...)
	})
	return out, release, nil
}

func toBSON(filters []Filter) bson.D {
	query := bson.D{}
	for _, f := range filters {
		query = append(query, bson.E{Key: f.Field, Value: f.Value})
	}
	return query
}

func wrapMongoError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	return err
}
