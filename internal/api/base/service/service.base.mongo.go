// Package basesvc chứa service MongoDB generic dùng chung cho các domain.
package basesvc

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/rezvirumon/user-billing-server/internal/common"
	"github.com/rezvirumon/user-billing-server/internal/database"
)

// BaseServiceMongoImpl cài đặt các thao tác CRUD chuẩn trên một collection
type BaseServiceMongoImpl[T any] struct {
	collection *mongo.Collection
}

// NewBaseServiceMongo tạo base service cho collection
func NewBaseServiceMongo[T any](collection *mongo.Collection) *BaseServiceMongoImpl[T] {
	return &BaseServiceMongoImpl[T]{collection: collection}
}

// NewBaseServiceFromRegistry lấy collection từ registry rồi tạo base service
func NewBaseServiceFromRegistry[T any](cols *database.Collections, name string) (*BaseServiceMongoImpl[T], error) {
	col, err := cols.MustGet(name)
	if err != nil {
		return nil, fmt.Errorf("collection %s: %w", name, err)
	}
	return NewBaseServiceMongo[T](col), nil
}

// Collection trả về collection MongoDB
func (s *BaseServiceMongoImpl[T]) Collection() *mongo.Collection {
	return s.collection
}

// InsertOne tạo bản ghi rồi đọc lại bản ghi vừa tạo
func (s *BaseServiceMongoImpl[T]) InsertOne(ctx context.Context, data T) (T, error) {
	var zero T

	result, err := s.collection.InsertOne(ctx, data)
	if err != nil {
		return zero, common.ConvertMongoError(err)
	}

	var created T
	if err := s.collection.FindOne(ctx, bson.M{"_id": result.InsertedID}).Decode(&created); err != nil {
		return zero, common.ConvertMongoError(err)
	}
	return created, nil
}

// FindOne tìm một document theo filter
func (s *BaseServiceMongoImpl[T]) FindOne(ctx context.Context, filter interface{}, opts *options.FindOneOptions) (T, error) {
	var result T

	if filter == nil {
		filter = bson.D{}
	}
	if opts == nil {
		opts = options.FindOne()
	}

	if err := s.collection.FindOne(ctx, filter, opts).Decode(&result); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return result, common.ErrNotFound
		}
		return result, common.ConvertMongoError(err)
	}
	return result, nil
}

// FindOneById tìm document theo ObjectId
func (s *BaseServiceMongoImpl[T]) FindOneById(ctx context.Context, id primitive.ObjectID) (T, error) {
	return s.FindOne(ctx, bson.M{"_id": id}, nil)
}

// Find tìm tất cả document theo filter, luôn trả về slice khác nil
func (s *BaseServiceMongoImpl[T]) Find(ctx context.Context, filter interface{}, opts *options.FindOptions) ([]T, error) {
	if filter == nil {
		filter = bson.D{}
	}
	if opts == nil {
		opts = options.Find()
	}

	cursor, err := s.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}
	defer cursor.Close(ctx)

	results := []T{}
	if err := cursor.All(ctx, &results); err != nil {
		return nil, common.ConvertMongoError(err)
	}
	return results, nil
}

// FindOneAndUpdate cập nhật và trả về document sau khi cập nhật.
// Không có document khớp filter trả về common.ErrNotFound.
func (s *BaseServiceMongoImpl[T]) FindOneAndUpdate(ctx context.Context, filter interface{}, update interface{}) (T, error) {
	var result T
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	if err := s.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&result); err != nil {
		return result, common.ConvertMongoError(err)
	}
	return result, nil
}

// FindOneAndDelete xóa và trả về document đã xóa
func (s *BaseServiceMongoImpl[T]) FindOneAndDelete(ctx context.Context, filter interface{}) (T, error) {
	var result T
	if err := s.collection.FindOneAndDelete(ctx, filter).Decode(&result); err != nil {
		return result, common.ConvertMongoError(err)
	}
	return result, nil
}

// DeleteMany xóa các document khớp filter, trả về số lượng đã xóa
func (s *BaseServiceMongoImpl[T]) DeleteMany(ctx context.Context, filter interface{}) (int64, error) {
	if filter == nil {
		filter = bson.D{}
	}
	res, err := s.collection.DeleteMany(ctx, filter)
	if err != nil {
		return 0, common.ConvertMongoError(err)
	}
	return res.DeletedCount, nil
}

// CountDocuments đếm document khớp filter
func (s *BaseServiceMongoImpl[T]) CountDocuments(ctx context.Context, filter interface{}) (int64, error) {
	if filter == nil {
		filter = bson.D{}
	}
	count, err := s.collection.CountDocuments(ctx, filter)
	if err != nil {
		return 0, common.ConvertMongoError(err)
	}
	return count, nil
}

// Distinct lấy các giá trị duy nhất của field
func (s *BaseServiceMongoImpl[T]) Distinct(ctx context.Context, fieldName string, filter interface{}) ([]interface{}, error) {
	if filter == nil {
		filter = bson.D{}
	}
	values, err := s.collection.Distinct(ctx, fieldName, filter)
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}
	return values, nil
}

// Aggregate chạy pipeline trên collection và decode kết quả vào []R
func Aggregate[R any](ctx context.Context, col *mongo.Collection, pipeline mongo.Pipeline) ([]R, error) {
	cursor, err := col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}
	defer cursor.Close(ctx)

	results := []R{}
	if err := cursor.All(ctx, &results); err != nil {
		return nil, common.ConvertMongoError(err)
	}
	return results, nil
}

// ParseObjectID chuyển hex id sang ObjectID. Id sai định dạng không thể tồn tại
// nên được xem là không tìm thấy.
func ParseObjectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, common.ErrNotFound
	}
	return oid, nil
}
