package catalog

import (
	"context"
	"regexp"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/coursedesk/coursedesk/internal/database"
	"github.com/coursedesk/coursedesk/internal/domain"
)

// ErrNotFound is returned when no document matches the business identifier
var ErrNotFound = errors.New("document not found")

// CourseRepository handles store operations on the Courses collection
type CourseRepository interface {
	// List returns every course, a single point-in-time read with no
	// ordering guarantee
	List(ctx context.Context) ([]domain.Course, error)

	// FindByID looks a course up by its numeric id field
	FindByID(ctx context.Context, id int) (*domain.Course, error)

	// Patch merges the given fields into the course matched by id and
	// returns the canonical post-update document. ErrNotFound when no
	// course matches.
	Patch(ctx context.Context, id int, patch map[string]interface{}) (*domain.Course, error)

	// Search returns courses matching the disjunctive query filter
	Search(ctx context.Context, query string) ([]domain.Course, error)
}

// OrderRepository handles store operations on the Orders collection
type OrderRepository interface {
	// Insert persists one order and returns the generated identifier
	Insert(ctx context.Context, order *domain.Order) (string, error)
}

// CollectionBrowser performs an unfiltered read of an arbitrary named
// collection. Callers enforce the allow-list; a missing collection yields
// an empty slice per the driver's empty-cursor semantics.
type CollectionBrowser interface {
	ListAll(ctx context.Context, name string) ([]map[string]interface{}, error)
}

// BuildSearchFilter builds the disjunctive search condition: case-insensitive
// substring match on topic and location, plus equality on price, spaces and
// id when the whole query parses as an integer.
func BuildSearchFilter(query string) bson.M {
	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(query), Options: "i"}
	conditions := []bson.M{
		{"topic": pattern},
		{"location": pattern},
	}
	if n, err := cast.ToIntE(strings.TrimSpace(query)); err == nil {
		conditions = append(conditions,
			bson.M{"price": n},
			bson.M{"spaces": n},
			bson.M{"id": n},
		)
	}
	return bson.M{"$or": conditions}
}

// MongoCourseRepository is the mongo-driver implementation of CourseRepository
type MongoCourseRepository struct {
	conn *database.Connector
}

func NewMongoCourseRepository(conn *database.Connector) *MongoCourseRepository {
	return &MongoCourseRepository{conn: conn}
}

func (r *MongoCourseRepository) collection() (*mongo.Collection, error) {
	return r.conn.Collection(domain.CollectionCourses)
}

func (r *MongoCourseRepository) List(ctx context.Context) ([]domain.Course, error) {
	coll, err := r.collection()
	if err != nil {
		return nil, err
	}
	ctx, cancel := r.conn.OpContext(ctx)
	defer cancel()
	release, err := r.conn.Guard(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	cursor, err := coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, errors.Wrap(err, "list courses")
	}
	courses := []domain.Course{}
	if err := cursor.All(ctx, &courses); err != nil {
		return nil, errors.Wrap(err, "decode courses")
	}
	return courses, nil
}

func (r *MongoCourseRepository) FindByID(ctx context.Context, id int) (*domain.Course, error) {
	coll, err := r.collection()
	if err != nil {
		return nil, err
	}
	ctx, cancel := r.conn.OpContext(ctx)
	defer cancel()
	release, err := r.conn.Guard(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	var course domain.Course
	err = coll.FindOne(ctx, bson.M{"id": id}).Decode(&course)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "find course")
	}
	return &course, nil
}

func (r *MongoCourseRepository) Patch(ctx context.Context, id int, patch map[string]interface{}) (*domain.Course, error) {
	coll, err := r.collection()
	if err != nil {
		return nil, err
	}
	ctx, cancel := r.conn.OpContext(ctx)
	defer cancel()
	release, err := r.conn.Guard(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	// the business identifier is not patchable
	delete(patch, "_id")
	delete(patch, "id")
	if len(patch) == 0 {
		return r.findCurrent(ctx, coll, id)
	}

	var updated domain.Course
	err = coll.FindOneAndUpdate(ctx,
		bson.M{"id": id},
		bson.M{"$set": patch},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "patch course")
	}
	return &updated, nil
}

func (r *MongoCourseRepository) findCurrent(ctx context.Context, coll *mongo.Collection, id int) (*domain.Course, error) {
	var course domain.Course
	err := coll.FindOne(ctx, bson.M{"id": id}).Decode(&course)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "find course")
	}
	return &course, nil
}

func (r *MongoCourseRepository) Search(ctx context.Context, query string) ([]domain.Course, error) {
	coll, err := r.collection()
	if err != nil {
		return nil, err
	}
	ctx, cancel := r.conn.OpContext(ctx)
	defer cancel()
	release, err := r.conn.Guard(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	cursor, err := coll.Find(ctx, BuildSearchFilter(query))
	if err != nil {
		return nil, errors.Wrap(err, "search courses")
	}
	courses := []domain.Course{}
	if err := cursor.All(ctx, &courses); err != nil {
		return nil, errors.Wrap(err, "decode search results")
	}
	return courses, nil
}

// MongoOrderRepository is the mongo-driver implementation of OrderRepository
type MongoOrderRepository struct {
	conn *database.Connector
}

func NewMongoOrderRepository(conn *database.Connector) *MongoOrderRepository {
	return &MongoOrderRepository{conn: conn}
}

func (r *MongoOrderRepository) Insert(ctx context.Context, order *domain.Order) (string, error) {
	coll, err := r.conn.Collection(domain.CollectionOrders)
	if err != nil {
		return "", err
	}
	ctx, cancel := r.conn.OpContext(ctx)
	defer cancel()
	release, err := r.conn.Guard(ctx)
	if err != nil {
		return "", err
	}
	defer release()

	result, err := coll.InsertOne(ctx, order)
	if err != nil {
		return "", errors.Wrap(err, "insert order")
	}
	oid, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", errors.Errorf("unexpected inserted id type %T", result.InsertedID)
	}
	order.OID = oid
	return oid.Hex(), nil
}

// MongoCollectionBrowser is the mongo-driver implementation of CollectionBrowser
type MongoCollectionBrowser struct {
	conn *database.Connector
}

func NewMongoCollectionBrowser(conn *database.Connector) *MongoCollectionBrowser {
	return &MongoCollectionBrowser{conn: conn}
}

func (b *MongoCollectionBrowser) ListAll(ctx context.Context, name string) ([]map[string]interface{}, error) {
	coll, err := b.conn.Collection(name)
	if err != nil {
		return nil, err
	}
	ctx, cancel := b.conn.OpContext(ctx)
	defer cancel()
	release, err := b.conn.Guard(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	cursor, err := coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, errors.Wrapf(err, "list collection %s", name)
	}
	docs := []map[string]interface{}{}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, errors.Wrapf(err, "decode collection %s", name)
	}
	return docs, nil
}
