package labtests

import (
	"context"
	"medilab-service/internal/app/contracts"
	"medilab-service/internal/app/models"
	"medilab-service/internal/pkg/constvars"
	"medilab-service/internal/pkg/exceptions"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type LabTestMongoRepository struct {
	Collection *mongo.Collection
}

func NewLabTestMongoRepository(db *mongo.Database) contracts.LabOrderRepository {
	collection := db.Collection(constvars.MongoCollectionLabOrders)

	// A barcode maps to at most one order for its lifetime.
	indexModel := mongo.IndexModel{
		Keys:    bson.D{{Key: "barcode", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	collection.Indexes().CreateOne(context.TODO(), indexModel)

	return &LabTestMongoRepository{
		Collection: collection,
	}
}

func (repo *LabTestMongoRepository) Create(ctx context.Context, order *models.LabOrder) (*models.LabOrder, error) {
	if order.ID == "" {
		order.ID = primitive.NewObjectID().Hex()
	}

	_, err := repo.Collection.InsertOne(ctx, order)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, exceptions.ErrDuplicateBarcode(err, order.Barcode)
		}
		return nil, exceptions.ErrMongoDBInsertDocument(err)
	}
	return order, nil
}

func (repo *LabTestMongoRepository) FindByID(ctx context.Context, orderID string) (*models.LabOrder, error) {
	var order models.LabOrder
	err := repo.Collection.FindOne(ctx, bson.M{"_id": orderID}).Decode(&order)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &order, nil
}

func (repo *LabTestMongoRepository) FindByBarcode(ctx context.Context, barcode string) (*models.LabOrder, error) {
	var order models.LabOrder
	err := repo.Collection.FindOne(ctx, bson.M{"barcode": barcode}).Decode(&order)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &order, nil
}

func (repo *LabTestMongoRepository) List(ctx context.Context, filter contracts.LabOrderFilter) ([]models.LabOrder, error) {
	findOptions := options.Find()
	switch filter.SortBy {
	case "createdAt":
		findOptions.SetSort(bson.D{{Key: "createdAt", Value: 1}})
	case "reportDate":
		findOptions.SetSort(bson.D{{Key: "reportDate", Value: -1}})
	default:
		// _id grows with insertion, which preserves creation order.
		findOptions.SetSort(bson.D{{Key: "_id", Value: 1}})
	}
	if filter.Limit > 0 {
		findOptions.SetLimit(filter.Limit)
	}

	cursor, err := repo.Collection.Find(ctx, buildMongoFilter(filter), findOptions)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}

	var orders []models.LabOrder
	err = cursor.All(ctx, &orders)
	if err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return orders, nil
}

func (repo *LabTestMongoRepository) Count(ctx context.Context, filter contracts.LabOrderFilter) (int64, error) {
	count, err := repo.Collection.CountDocuments(ctx, buildMongoFilter(filter))
	if err != nil {
		return 0, exceptions.ErrMongoDBFindDocument(err)
	}
	return count, nil
}

func (repo *LabTestMongoRepository) UpdateStatus(ctx context.Context, orderID string, fromStatuses []string, toStatus string) (*models.LabOrder, error) {
	update := bson.M{"$set": bson.M{
		"status":    toStatus,
		"updatedAt": time.Now(),
	}}
	return repo.guardedUpdate(ctx, orderID, fromStatuses, update)
}

func (repo *LabTestMongoRepository) AttachSpecimen(ctx context.Context, orderID string, fromStatuses []string, specimen *models.Specimen) (*models.LabOrder, error) {
	update := bson.M{"$set": bson.M{
		"status":    constvars.LabStatusCollected,
		"specimen":  specimen,
		"updatedAt": time.Now(),
	}}
	return repo.guardedUpdate(ctx, orderID, fromStatuses, update)
}

func (repo *LabTestMongoRepository) Complete(ctx context.Context, orderID string, fromStatuses []string, completion *models.Completion) (*models.LabOrder, error) {
	update := bson.M{"$set": bson.M{
		"status":         constvars.LabStatusCompleted,
		"testParameters": completion.TestParameters,
		"overallResult":  completion.OverallResult,
		"interpretation": completion.Interpretation,
		"isAbnormal":     completion.IsAbnormal,
		"isCritical":     completion.IsCritical,
		"reportDate":     completion.ReportDate,
		"updatedAt":      time.Now(),
	}}
	return repo.guardedUpdate(ctx, orderID, fromStatuses, update)
}

// guardedUpdate applies the update only while the document status is in
// fromStatuses. The filtered FindOneAndUpdate is a per-record
// compare-and-swap: two racing transitions get exactly one winner, the
// loser sees (nil, nil).
func (repo *LabTestMongoRepository) guardedUpdate(ctx context.Context, orderID string, fromStatuses []string, update bson.M) (*models.LabOrder, error) {
	filter := bson.M{
		"_id":    orderID,
		"status": bson.M{"$in": fromStatuses},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var order models.LabOrder
	err := repo.Collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&order)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBUpdateDocument(err)
	}
	return &order, nil
}

func buildMongoFilter(filter contracts.LabOrderFilter) bson.M {
	mongoFilter := bson.M{}
	if len(filter.Statuses) > 0 {
		mongoFilter["status"] = bson.M{"$in": filter.Statuses}
	}
	if filter.Priority != "" {
		mongoFilter["priority"] = filter.Priority
	}
	if filter.Search != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(filter.Search), Options: "i"}
		mongoFilter["$or"] = bson.A{
			bson.M{"patientName": pattern},
			bson.M{"testType": pattern},
		}
	}
	return mongoFilter
}
