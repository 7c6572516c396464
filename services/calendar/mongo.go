package calendar

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"appointly/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoCalendar persists appointments in MongoDB. Sequential ids come from
// a counter document so they stay monotonic across restarts.
type MongoCalendar struct {
	mu       sync.Mutex
	appts    *mongo.Collection
	counters *mongo.Collection
}

// NewMongoCalendar builds a calendar over the given database.
func NewMongoCalendar(db *mongo.Database) *MongoCalendar {
	return &MongoCalendar{
		appts:    db.Collection("appointments"),
		counters: db.Collection("counters"),
	}
}

func (c *MongoCalendar) nextID(ctx context.Context) (string, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var counter struct {
		Seq int `bson:"seq"`
	}
	err := c.counters.FindOneAndUpdate(
		ctxWithTimeout,
		bson.M{"_id": "appointments"},
		bson.M{"$inc": bson.M{"seq": 1}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&counter)
	if err != nil {
		return "", fmt.Errorf("error allocating appointment id: %w", err)
	}
	return strconv.Itoa(counter.Seq), nil
}

func (c *MongoCalendar) busyWithin(ctx context.Context, windowStart, windowEnd time.Time) ([]models.Appointment, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"start": bson.M{"$lt": windowEnd},
		"end":   bson.M{"$gt": windowStart},
	}
	cursor, err := c.appts.Find(ctxWithTimeout, filter)
	if err != nil {
		return nil, fmt.Errorf("error loading appointments: %w", err)
	}
	var busy []models.Appointment
	if err := cursor.All(ctxWithTimeout, &busy); err != nil {
		return nil, fmt.Errorf("error decoding appointments: %w", err)
	}
	return busy, nil
}

func (c *MongoCalendar) Availability(ctx context.Context, windowStart, windowEnd time.Time) ([]models.Slot, error) {
	busy, err := c.busyWithin(ctx, windowStart, windowEnd)
	if err != nil {
		return nil, err
	}
	return AvailableSlots(windowStart, windowEnd, busy), nil
}

func (c *MongoCalendar) BookAppointment(ctx context.Context, title string, start time.Time, durationHours int) (*models.Appointment, error) {
	if durationHours <= 0 {
		durationHours = 1
	}
	end := start.Add(time.Duration(durationHours) * time.Hour)

	// Serialize the conflict check and insert so concurrent conversations
	// cannot both commit the same slot through this process.
	c.mu.Lock()
	defer c.mu.Unlock()

	busy, err := c.busyWithin(ctx, start, end)
	if err != nil {
		return nil, err
	}
	if len(busy) > 0 {
		return nil, &ConflictError{Start: start}
	}

	id, err := c.nextID(ctx)
	if err != nil {
		return nil, err
	}
	apt := models.Appointment{ID: id, Title: title, Start: start, End: end}

	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if _, err := c.appts.InsertOne(ctxWithTimeout, apt); err != nil {
		return nil, fmt.Errorf("error creating appointment: %w", err)
	}
	return &apt, nil
}

func (c *MongoCalendar) CancelAppointment(ctx context.Context, id string) (*models.Appointment, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var removed models.Appointment
	err := c.appts.FindOneAndDelete(ctxWithTimeout, bson.M{"id": id}).Decode(&removed)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, &NotFoundError{ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("error cancelling appointment %s: %w", id, err)
	}
	return &removed, nil
}

func (c *MongoCalendar) ListAppointments(ctx context.Context) ([]models.Appointment, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.M{"start": 1})
	cursor, err := c.appts.Find(ctxWithTimeout, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing appointments: %w", err)
	}
	var out []models.Appointment
	if err := cursor.All(ctxWithTimeout, &out); err != nil {
		return nil, fmt.Errorf("error decoding appointments: %w", err)
	}
	return out, nil
}
