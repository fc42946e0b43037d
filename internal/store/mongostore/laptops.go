package mongostore

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Aidin1998/laptrack/pkg/errors"
	"github.com/Aidin1998/laptrack/pkg/models"
)

func (s *Store) CreateLaptop(ctx context.Context, laptop *models.Laptop) error {
	err := s.laptops.insert(ctx, laptop)
	if errors.Is(err, errors.Conflict) {
		return errors.Conflict.Explain("laptop with serial number %s already exists", laptop.SerialNumber)
	}
	return err
}

func (s *Store) GetLaptop(ctx context.Context, id primitive.ObjectID) (*models.Laptop, error) {
	return s.laptops.get(ctx, id)
}

func (s *Store) GetLaptopBySerial(ctx context.Context, serial string) (*models.Laptop, error) {
	return s.laptops.findOne(ctx, bson.M{"serial_number": serial}, serial)
}

func (s *Store) ListLaptops(ctx context.Context, f models.LaptopFilter, page models.Page) ([]*models.Laptop, int64, error) {
	filter := bson.M{}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.Brand != "" {
		filter["brand"] = primitive.Regex{Pattern: "^" + regexp.QuoteMeta(f.Brand) + "$", Options: "i"}
	}
	if f.Search != "" {
		re := primitive.Regex{Pattern: regexp.QuoteMeta(f.Search), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"brand": re},
			bson.M{"model": re},
			bson.M{"serial_number": re},
		}
	}
	return s.laptops.list(ctx, filter, page)
}

func (s *Store) UpdateLaptop(ctx context.Context, laptop *models.Laptop) error {
	err := s.laptops.replace(ctx, laptop)
	if errors.Is(err, errors.Conflict) {
		return errors.Conflict.Explain("laptop with serial number %s already exists", laptop.SerialNumber)
	}
	return err
}

func (s *Store) DeleteLaptop(ctx context.Context, id primitive.ObjectID) error {
	return s.laptops.delete(ctx, id)
}

func (s *Store) TransitionLaptopStatus(ctx context.Context, id primitive.ObjectID, from, to models.LaptopStatus) error {
	res, err := s.laptops.coll.UpdateOne(ctx,
		bson.M{"_id": id, "status": from},
		bson.M{
			"$set": bson.M{"status": to, "updated_at": time.Now().UTC()},
			"$inc": bson.M{"version": 1},
		},
	)
	if err != nil {
		return fmt.Errorf("update laptop status: %w", err)
	}
	if res.MatchedCount == 1 {
		return nil
	}

	current, err := s.GetLaptop(ctx, id)
	if err != nil {
		return err
	}
	return errors.Conflict.Explain("laptop %s is %s, expected %s", id.Hex(), current.Status, from)
}
