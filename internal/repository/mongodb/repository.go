package mongodb

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"stocktake/internal/domain/models"
)

const (
	productsCollection    = "products"
	inventoriesCollection = "inventories"
	snapshotsCollection   = "dashboard_snapshots"
)

// Repository defines the document-store operations the services depend on.
type Repository interface {
	InsertProduct(ctx context.Context, product *models.Product) (*models.Product, error)
	FindProductByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	FindProductByName(ctx context.Context, name string) (*models.Product, error)
	ListProducts(ctx context.Context) ([]models.Product, error)
	UpdateProduct(ctx context.Context, id primitive.ObjectID, patch models.ProductPatch) (*models.Product, error)
	DeleteProduct(ctx context.Context, id primitive.ObjectID) error

	InsertInventory(ctx context.Context, inventory *models.Inventory) (*models.Inventory, error)
	FindInventoryByID(ctx context.Context, id primitive.ObjectID) (*models.Inventory, error)
	ListInventories(ctx context.Context) ([]models.Inventory, error)
	UpdateInventory(ctx context.Context, id primitive.ObjectID, patch models.InventoryPatch) (*models.Inventory, error)
	DeleteInventory(ctx context.Context, id primitive.ObjectID) error

	SaveInventoryEntries(ctx context.Context, inventory *models.Inventory) error
	SaveReconciliation(ctx context.Context, inventory *models.Inventory, product *models.Product, delta float64) error

	InsertSnapshot(ctx context.Context, snapshot *models.DashboardSnapshot) error
}

// MongoDBRepository implements Repository against a MongoDB deployment.
type MongoDBRepository struct {
	client *mongo.Client
	dbName string
	logger *zap.Logger
}

// NewMongoDBRepository connects to MongoDB and verifies the connection.
func NewMongoDBRepository(ctx context.Context, uri string, dbName string, logger *zap.Logger) (*MongoDBRepository, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &MongoDBRepository{client: client, dbName: dbName, logger: logger}, nil
}

// Close closes the MongoDB connection.
func (r *MongoDBRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}

func (r *MongoDBRepository) products() *mongo.Collection {
	return r.client.Database(r.dbName).Collection(productsCollection)
}

func (r *MongoDBRepository) inventories() *mongo.Collection {
	return r.client.Database(r.dbName).Collection(inventoriesCollection)
}

func (r *MongoDBRepository) snapshots() *mongo.Collection {
	return r.client.Database(r.dbName).Collection(snapshotsCollection)
}

// InsertProduct stores a new product and returns it with its assigned id.
func (r *MongoDBRepository) InsertProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	res, err := r.products().InsertOne(ctx, product)
	if err != nil {
		return nil, fmt.Errorf("insert product: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		product.ID = oid
	}
	return product, nil
}

// FindProductByID loads one product, returning models.ErrNotFound when absent.
func (r *MongoDBRepository) FindProductByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	var product models.Product
	err := r.products().FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("product %s: %w", id.Hex(), models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find product %s: %w", id.Hex(), err)
	}
	return &product, nil
}

// FindProductByName loads one product by exact name, used by the
// spreadsheet import to upsert rows.
func (r *MongoDBRepository) FindProductByName(ctx context.Context, name string) (*models.Product, error) {
	var product models.Product
	err := r.products().FindOne(ctx, bson.M{"name": name}).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("product %q: %w", name, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find product %q: %w", name, err)
	}
	return &product, nil
}

// ListProducts returns all products, newest first.
func (r *MongoDBRepository) ListProducts(ctx context.Context) ([]models.Product, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.products().Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}
	return products, nil
}

// UpdateProduct applies an allow-listed patch and returns the updated document.
func (r *MongoDBRepository) UpdateProduct(ctx context.Context, id primitive.ObjectID, patch models.ProductPatch) (*models.Product, error) {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Unit != nil {
		set["unit"] = *patch.Unit
	}
	if patch.QuantityPerBox != nil {
		set["quantityPerBox"] = *patch.QuantityPerBox
	}
	if patch.BoxUnit != nil {
		set["boxUnit"] = *patch.BoxUnit
	}
	if patch.PacketQuantity != nil {
		set["packetQuantity"] = *patch.PacketQuantity
	}
	if patch.PacketUnit != nil {
		set["packetUnit"] = *patch.PacketUnit
	}
	if patch.CurrentQuantity != nil {
		set["currentQuantity"] = *patch.CurrentQuantity
	}
	if patch.Category != nil {
		set["category"] = *patch.Category
	}
	if patch.Location != nil {
		set["location"] = *patch.Location
	}
	if patch.StoreName != nil {
		set["storeName"] = *patch.StoreName
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var product models.Product
	err := r.products().FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("product %s: %w", id.Hex(), models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("update product %s: %w", id.Hex(), err)
	}
	return &product, nil
}

// DeleteProduct removes a product. Inventory entries referencing it are
// intentionally left in place; there is no cascade.
func (r *MongoDBRepository) DeleteProduct(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.products().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete product %s: %w", id.Hex(), err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("product %s: %w", id.Hex(), models.ErrNotFound)
	}
	return nil
}

// InsertInventory stores a new inventory snapshot.
func (r *MongoDBRepository) InsertInventory(ctx context.Context, inventory *models.Inventory) (*models.Inventory, error) {
	res, err := r.inventories().InsertOne(ctx, inventory)
	if err != nil {
		return nil, fmt.Errorf("insert inventory: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		inventory.ID = oid
	}
	return inventory, nil
}

// FindInventoryByID loads one inventory, returning models.ErrNotFound when absent.
func (r *MongoDBRepository) FindInventoryByID(ctx context.Context, id primitive.ObjectID) (*models.Inventory, error) {
	var inventory models.Inventory
	err := r.inventories().FindOne(ctx, bson.M{"_id": id}).Decode(&inventory)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("inventory %s: %w", id.Hex(), models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find inventory %s: %w", id.Hex(), err)
	}
	return &inventory, nil
}

// ListInventories returns all inventories, most recent date first.
func (r *MongoDBRepository) ListInventories(ctx context.Context) ([]models.Inventory, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := r.inventories().Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list inventories: %w", err)
	}
	defer cursor.Close(ctx)

	inventories := []models.Inventory{}
	if err := cursor.All(ctx, &inventories); err != nil {
		return nil, fmt.Errorf("decode inventories: %w", err)
	}
	return inventories, nil
}

// UpdateInventory applies an allow-listed header patch.
func (r *MongoDBRepository) UpdateInventory(ctx context.Context, id primitive.ObjectID, patch models.InventoryPatch) (*models.Inventory, error) {
	set := bson.M{}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.StoreName != nil {
		set["storeName"] = *patch.StoreName
	}
	if patch.Date != nil {
		set["date"] = models.DateOnly(*patch.Date)
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if len(set) == 0 {
		return r.FindInventoryByID(ctx, id)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var inventory models.Inventory
	err := r.inventories().FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&inventory)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("inventory %s: %w", id.Hex(), models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("update inventory %s: %w", id.Hex(), err)
	}
	return &inventory, nil
}

// DeleteInventory removes an inventory. Product quantities contributed
// by its entries are not rolled back.
func (r *MongoDBRepository) DeleteInventory(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.inventories().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete inventory %s: %w", id.Hex(), err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("inventory %s: %w", id.Hex(), models.ErrNotFound)
	}
	return nil
}

// SaveInventoryEntries persists the inventory's entry list only, used
// by entry removal where the product side is intentionally untouched.
func (r *MongoDBRepository) SaveInventoryEntries(ctx context.Context, inventory *models.Inventory) error {
	res, err := r.inventories().UpdateByID(ctx, inventory.ID, bson.M{
		"$set": bson.M{"products": inventory.Products},
	})
	if err != nil {
		return fmt.Errorf("save inventory entries %s: %w", inventory.ID.Hex(), err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("inventory %s: %w", inventory.ID.Hex(), models.ErrNotFound)
	}
	return nil
}

// SaveReconciliation persists the paired writes of a reconciliation
// operation: the inventory's entry list, and the product's running
// quantity as an atomic $inc of delta together with its quantity
// history. Both writes run inside one transaction when the deployment
// supports it; on standalone topologies they fall back to sequential
// execution, which leaves a partial-failure window that is logged
// rather than hidden.
func (r *MongoDBRepository) SaveReconciliation(ctx context.Context, inventory *models.Inventory, product *models.Product, delta float64) error {
	apply := func(ctx context.Context) error {
		if err := r.SaveInventoryEntries(ctx, inventory); err != nil {
			return err
		}
		res, err := r.products().UpdateByID(ctx, product.ID, bson.M{
			"$inc": bson.M{"currentQuantity": delta},
			"$set": bson.M{
				"quantityHistory": product.QuantityHistory,
				"updatedAt":       time.Now().UTC(),
			},
		})
		if err != nil {
			return fmt.Errorf("save product quantity %s: %w", product.ID.Hex(), err)
		}
		if res.MatchedCount == 0 {
			return fmt.Errorf("product %s: %w", product.ID.Hex(), models.ErrNotFound)
		}
		return nil
	}

	session, err := r.client.StartSession()
	if err == nil {
		defer session.EndSession(ctx)
		_, txnErr := session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
			return nil, apply(sc)
		})
		if txnErr == nil {
			return nil
		}
		if !transactionsUnsupported(txnErr) {
			return txnErr
		}
	}

	r.logger.Warn("mongodb transactions unavailable, applying reconciliation writes sequentially",
		zap.String("inventory_id", inventory.ID.Hex()),
		zap.String("product_id", product.ID.Hex()))
	return apply(ctx)
}

// InsertSnapshot stores a dashboard snapshot document.
func (r *MongoDBRepository) InsertSnapshot(ctx context.Context, snapshot *models.DashboardSnapshot) error {
	if _, err := r.snapshots().InsertOne(ctx, snapshot); err != nil {
		return fmt.Errorf("insert dashboard snapshot: %w", err)
	}
	return nil
}

// transactionsUnsupported detects the server rejecting multi-document
// transactions, which happens on standalone (non replica set) topologies.
func transactionsUnsupported(err error) bool {
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) && cmdErr.Code == 20 { // IllegalOperation
		return true
	}
	return strings.Contains(err.Error(), "Transaction numbers are only allowed")
}
