package mongo_client

import (
	"context"
	"os"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
	"gopkg.in/mgo.v2/bson"
)

// Client stays nil when MONGO_URI is unset or unreachable; the response cache
// is simply disabled in that case.
var (
	Client *mongo.Client
)

func init() {
	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		zap.L().Info("MONGO_URI not set, valuation response cache disabled")
		return
	}

	serverAPI := options.ServerAPI(options.ServerAPIVersion1)
	opts := options.Client().ApplyURI(mongoURI).SetServerAPIOptions(serverAPI)

	client, err := mongo.Connect(context.TODO(), opts)
	if err != nil {
		zap.L().Error("MongoDB initialization failed: ", zap.Any("error", err.Error()))
		return
	}

	// Send a ping to confirm a successful connection
	pingCmd := bson.M{"ping": 1}
	if err := client.Database("admin").RunCommand(context.TODO(), pingCmd).Err(); err != nil {
		zap.L().Error("MongoDB ping failed: ", zap.Any("error", err.Error()))
		return
	}

	Client = client
	zap.L().Info("Connected to MongoDB")
}
