package internal

import (
	"bmlpay/config"
	"bmlpay/entity"
	"bmlpay/services"
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	collectionLog           = "payment_log"
	collectionTransactions  = "transactions"
	collectionNotifications = "notifications"
)

type MongoDB struct {
	ctx              context.Context
	clientOptions    *options.ClientOptions
	database         string
	logRecordsNumber int64
}

func NewMongoClient(conf *config.Config) (*MongoDB, error) {
	if !conf.Mongo.Enabled {
		return nil, nil
	}
	connectionUri := fmt.Sprintf("mongodb://%s:%s", conf.Mongo.Host, conf.Mongo.Port)
	clientOptions := options.Client().ApplyURI(connectionUri)
	if conf.Mongo.User != "" {
		clientOptions.SetAuth(options.Credential{
			Username:   conf.Mongo.User,
			Password:   conf.Mongo.Password,
			AuthSource: conf.Mongo.Database,
		})
	}
	client := &MongoDB{
		ctx:              context.Background(),
		clientOptions:    clientOptions,
		database:         conf.Mongo.Database,
		logRecordsNumber: conf.LogRecords,
	}
	return client, nil
}

func (m *MongoDB) connect() (*mongo.Client, error) {
	connection, err := mongo.Connect(m.ctx, m.clientOptions)
	if err != nil {
		return nil, err
	}
	return connection, nil
}

func (m *MongoDB) disconnect(connection *mongo.Client) {
	err := connection.Disconnect(m.ctx)
	if err != nil {
		log.Println("mongodb disconnect error", err)
	}
}

// SaveTransaction registers a transaction by its merchant reference. An
// existing record with the same reference is left untouched; re-posting a
// registration never resets a transaction's state.
func (m *MongoDB) SaveTransaction(ctx context.Context, transaction *entity.Transaction) error {
	connection, err := m.connect()
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	filter := bson.D{{Key: "reference", Value: transaction.Reference}}
	set := bson.M{"$setOnInsert": transaction}
	collection := connection.Database(m.database).Collection(collectionTransactions)
	_, err = collection.UpdateOne(ctx, filter, set, options.Update().SetUpsert(true))
	if err != nil {
		return err
	}
	return nil
}

// FindTransactionsByReference returns all transactions carrying the
// reference. The caller decides what more than one match means; the store
// reports what is there.
func (m *MongoDB) FindTransactionsByReference(ctx context.Context, reference string) ([]entity.Transaction, error) {
	connection, err := m.connect()
	if err != nil {
		return nil, err
	}
	defer m.disconnect(connection)

	filter := bson.D{{Key: "reference", Value: reference}}
	collection := connection.Database(m.database).Collection(collectionTransactions)
	cursor, err := collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	var transactions []entity.Transaction
	if err = cursor.All(ctx, &transactions); err != nil {
		return nil, err
	}
	return transactions, nil
}

// ApplyTransactionOutcome moves a pending transaction to its terminal state.
// The filter includes the pending state, so the write is a compare-and-swap:
// a concurrent or repeated notification matches nothing and reports false.
func (m *MongoDB) ApplyTransactionOutcome(ctx context.Context, reference string, providerReference string, state string, message string) (bool, error) {
	connection, err := m.connect()
	if err != nil {
		return false, err
	}
	defer m.disconnect(connection)

	filter := bson.D{{Key: "reference", Value: reference}, {Key: "state", Value: entity.StatePending}}
	update := bson.D{
		{Key: "$set", Value: bson.D{
			{Key: "state", Value: state},
			{Key: "state_message", Value: message},
			{Key: "provider_reference", Value: providerReference},
			{Key: "time_closed", Value: time.Now()},
		}},
	}
	collection := connection.Database(m.database).Collection(collectionTransactions)
	result, err := collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, err
	}
	return result.MatchedCount > 0, nil
}

func (m *MongoDB) SaveNotification(ctx context.Context, notification *entity.Notification) error {
	connection, err := m.connect()
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(collectionNotifications)
	_, err = collection.InsertOne(ctx, notification)
	return err
}

func (m *MongoDB) WriteLogMessage(data services.Data) error {
	connection, err := m.connect()
	if err != nil {
		return err
	}
	defer m.disconnect(connection)
	collection := connection.Database(m.database).Collection(collectionLog)
	_, err = collection.InsertOne(m.ctx, data)
	return err
}
