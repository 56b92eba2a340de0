package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"lavacar_booking/internal/domain/entities"
	"lavacar_booking/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

const defaultBookingsTableName = "reservas"

type bookingItem struct {
	ID              string  `dynamodbav:"id"`
	Name            string  `dynamodbav:"name"`
	Email           string  `dynamodbav:"email"`
	Phone           string  `dynamodbav:"phone"`
	Address         string  `dynamodbav:"address"`
	ServiceID       string  `dynamodbav:"service_id"`
	ServiceName     string  `dynamodbav:"service_name"`
	ServicePrice    float64 `dynamodbav:"service_price"`
	Date            string  `dynamodbav:"date"`
	Time            string  `dynamodbav:"time"`
	Comments        string  `dynamodbav:"comments"`
	Status          string  `dynamodbav:"status"`
	PaymentIntentID string  `dynamodbav:"payment_intent_id,omitempty"`
	CreatedAt       string  `dynamodbav:"created_at"`
	UpdatedAt       string  `dynamodbav:"updated_at"`
}

// BookingDynamoRepository persists Booking entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string, uuid assigned on create)
//
// Status changes are conditional writes: the update only applies while the
// stored status is one the target may be reached from.
type BookingDynamoRepository struct {
	ddb       DynamoDBAPI
	tableName string
}

var _ interfaces.IBookingRepository = (*BookingDynamoRepository)(nil)

func NewBookingDynamoRepository(ddb DynamoDBAPI, tableName string) *BookingDynamoRepository {
	return &BookingDynamoRepository{
		ddb:       ddb,
		tableName: tableNameOrDefault(tableName, defaultBookingsTableName),
	}
}

func (r *BookingDynamoRepository) Create(ctx context.Context, b entities.Booking) (entities.Booking, error) {
	b.ID = uuid.NewString()
	if b.Status == "" {
		b.Status = entities.BookingStatusPending
	}
	now := time.Now().UTC()
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	if b.UpdatedAt.IsZero() {
		b.UpdatedAt = b.CreatedAt
	}

	av, err := attributevalue.MarshalMap(toBookingItem(b))
	if err != nil {
		return entities.Booking{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		return entities.Booking{}, err
	}
	return b, nil
}

func (r *BookingDynamoRepository) GetByID(ctx context.Context, id string) (entities.Booking, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Booking{}, err
	}
	if len(out.Item) == 0 {
		return entities.Booking{}, nil
	}

	var it bookingItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Booking{}, err
	}
	return fromBookingItem(it), nil
}

// List returns every booking ordered by date, then time slot.
func (r *BookingDynamoRepository) List(ctx context.Context) ([]entities.Booking, error) {
	p := dynamodb.NewScanPaginator(r.ddb, &dynamodb.ScanInput{TableName: aws.String(r.tableName)})

	out := []entities.Booking{}
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		var items []bookingItem
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &items); err != nil {
			return nil, err
		}
		for _, it := range items {
			out = append(out, fromBookingItem(it))
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		if out[i].Time != out[j].Time {
			return out[i].Time < out[j].Time
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

// UpdateStatus moves a booking to status. It returns ErrBookingNotFound for an
// unknown id and *entities.StatusConflictError when the stored status does
// not allow the move.
func (r *BookingDynamoRepository) UpdateStatus(ctx context.Context, id string, status entities.BookingStatus, update entities.BookingStatusUpdate) (entities.Booking, error) {
	from := status.AllowedFrom()
	if !status.Valid() || len(from) == 0 {
		return entities.Booking{}, fmt.Errorf("status %q cannot be set by an update", status)
	}

	return r.update(ctx, id, status, from, func(now string) (string, map[string]types.AttributeValue, map[string]string) {
		expr := "SET #status = :status, #updated_at = :updated_at"
		vals := map[string]types.AttributeValue{
			":status":     &types.AttributeValueMemberS{Value: string(status)},
			":updated_at": &types.AttributeValueMemberS{Value: now},
		}
		names := map[string]string{
			"#status":     "status",
			"#updated_at": "updated_at",
		}
		if update.PaymentIntentID != "" {
			expr += ", #payment_intent_id = :payment_intent_id"
			vals[":payment_intent_id"] = &types.AttributeValueMemberS{Value: update.PaymentIntentID}
			names["#payment_intent_id"] = "payment_intent_id"
		}
		return expr, vals, names
	})
}

func (r *BookingDynamoRepository) update(
	ctx context.Context,
	id string,
	target entities.BookingStatus,
	from []entities.BookingStatus,
	build func(now string) (updateExpr string, values map[string]types.AttributeValue, names map[string]string),
) (entities.Booking, error) {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	updateExpr, values, names := build(now)

	placeholders := make([]string, 0, len(from))
	for i, s := range from {
		ph := fmt.Sprintf(":from%d", i)
		placeholders = append(placeholders, ph)
		values[ph] = &types.AttributeValueMemberS{Value: string(s)}
	}
	condition := fmt.Sprintf("attribute_exists(#id) AND #status IN (%s)", strings.Join(placeholders, ", "))

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression:                 aws.String(condition),
		UpdateExpression:                    aws.String(updateExpr),
		ExpressionAttributeValues:           values,
		ExpressionAttributeNames:            mergeNames(names, map[string]string{"#id": "id", "#status": "status"}),
		ReturnValues:                        types.ReturnValueAllNew,
		ReturnValuesOnConditionCheckFailure: types.ReturnValuesOnConditionCheckFailureAllOld,
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			if len(cfe.Item) == 0 {
				return entities.Booking{}, entities.ErrBookingNotFound
			}
			var it bookingItem
			if uerr := attributevalue.UnmarshalMap(cfe.Item, &it); uerr != nil {
				return entities.Booking{}, uerr
			}
			return entities.Booking{}, &entities.StatusConflictError{BookingID: id, Current: entities.BookingStatus(it.Status), Target: target}
		}
		return entities.Booking{}, err
	}
	if len(out.Attributes) == 0 {
		return entities.Booking{}, entities.ErrBookingNotFound
	}
	var it bookingItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.Booking{}, err
	}
	return fromBookingItem(it), nil
}

func toBookingItem(b entities.Booking) bookingItem {
	return bookingItem{
		ID:              b.ID,
		Name:            b.Name,
		Email:           b.Email,
		Phone:           b.Phone,
		Address:         b.Address,
		ServiceID:       b.ServiceID,
		ServiceName:     b.ServiceName,
		ServicePrice:    b.ServicePrice,
		Date:            formatTime(b.Date),
		Time:            b.Time,
		Comments:        b.Comments,
		Status:          string(b.Status),
		PaymentIntentID: b.PaymentIntentID,
		CreatedAt:       formatTime(b.CreatedAt),
		UpdatedAt:       formatTime(b.UpdatedAt),
	}
}

func fromBookingItem(it bookingItem) entities.Booking {
	return entities.Booking{
		ID:              it.ID,
		Name:            it.Name,
		Email:           it.Email,
		Phone:           it.Phone,
		Address:         it.Address,
		ServiceID:       it.ServiceID,
		ServiceName:     it.ServiceName,
		ServicePrice:    it.ServicePrice,
		Date:            parseTime(it.Date),
		Time:            it.Time,
		Comments:        it.Comments,
		Status:          entities.BookingStatus(it.Status),
		PaymentIntentID: it.PaymentIntentID,
		CreatedAt:       parseTime(it.CreatedAt),
		UpdatedAt:       parseTime(it.UpdatedAt),
	}
}
