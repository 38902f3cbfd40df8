package app

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/coursedesk/coursedesk/internal/domain"
)

// seedCourses is the default catalog installed into an empty store
var seedCourses = []domain.Course{
	{ID: 1, Topic: "Maths", Location: "London", Price: 10, Spaces: 5, Image: "Assets/maths.png"},
	{ID: 2, Topic: "English", Location: "Bristol", Price: 8, Spaces: 5, Image: "Assets/english.png"},
	{ID: 3, Topic: "Science", Location: "Oxford", Price: 12, Spaces: 5, Image: "Assets/science.png"},
	{ID: 4, Topic: "Music", Location: "London", Price: 9, Spaces: 5, Image: "Assets/music.png"},
	{ID: 5, Topic: "Art", Location: "Cambridge", Price: 7, Spaces: 5, Image: "Assets/art.png"},
}

// checkSeedCourses installs the default catalog when the Courses collection
// is empty. Skipped silently while the store is unreachable.
func (a *Application) checkSeedCourses() {
	coll, err := a.conn.Collection(domain.CollectionCourses)
	if err != nil {
		zap.L().Debug("seed check skipped, store not connected")
		return
	}

	ctx, cancel := a.conn.OpContext(context.Background())
	defer cancel()

	count, err := coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		zap.L().Error("failed to count courses for seed check", zap.Error(err))
		return
	}
	if count > 0 {
		return
	}

	docs := make([]interface{}, 0, len(seedCourses))
	for _, course := range seedCourses {
		docs = append(docs, course)
	}
	if _, err := coll.InsertMany(ctx, docs); err != nil {
		zap.L().Error("failed to seed default courses", zap.Error(err))
		return
	}
	zap.L().Info("initialized default course catalog", zap.Int("count", len(seedCourses)))
}

// InitDb drops the owned collections and reinstalls the seed catalog
func (a *Application) InitDb() {
	if !a.conn.Connected() {
		zap.L().Error("initdb requires a live store connection")
		return
	}

	ctx, cancel := a.conn.OpContext(context.Background())
	defer cancel()

	for _, name := range domain.Collections {
		coll, err := a.conn.Collection(name)
		if err != nil {
			return
		}
		if err := coll.Drop(ctx); err != nil {
			zap.L().Error("failed to drop collection", zap.String("collection", name), zap.Error(err))
		}
	}
	a.checkSeedCourses()
}
