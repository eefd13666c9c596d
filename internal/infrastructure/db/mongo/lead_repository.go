package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/route2rise/leaddesk/internal/core/domain"
	"github.com/route2rise/leaddesk/internal/core/ports"
)

const collectionLeads = "leads"

// LeadRepository implements ports.LeadRepository using MongoDB. Every
// mutator is a single FindOneAndUpdate, so concurrent writes to the same
// lead are serialized by the store.
type LeadRepository struct {
	col *mongo.Collection
}

func NewLeadRepository(db *mongo.Database) *LeadRepository {
	return &LeadRepository{col: db.Collection(collectionLeads)}
}

type interactionDocument struct {
	Timestamp time.Time `bson:"timestamp"`
	Action    string    `bson:"action"`
	Notes     string    `bson:"notes,omitempty"`
}

type leadDocument struct {
	ID                 primitive.ObjectID    `bson:"_id,omitempty"`
	CompanyName        string                `bson:"company_name"`
	Email              string                `bson:"email"`
	MobileNumber       string                `bson:"mobile_number"`
	Sector             string                `bson:"sector"`
	Status             string                `bson:"status"`
	Notes              string                `bson:"notes,omitempty"`
	NextFollowUpDate   string                `bson:"next_follow_up_date,omitempty"`
	CreatedBy          string                `bson:"created_by"`
	AssignedTo         string                `bson:"assigned_to"`
	CreatedAt          time.Time             `bson:"created_at"`
	UpdatedAt          time.Time             `bson:"updated_at"`
	IsDeleted          bool                  `bson:"is_deleted"`
	InteractionHistory []interactionDocument `bson:"interaction_history"`
}

// Insert persists a new lead document and returns it with the assigned ID.
func (r *LeadRepository) Insert(ctx context.Context, lead *domain.Lead) (*domain.Lead, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, toLeadDocument(lead))
	if err != nil {
		return nil, fmt.Errorf("insert lead: %w", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("insert lead: unexpected inserted id type %T", res.InsertedID)
	}

	created := *lead
	created.ID = oid.Hex()
	return &created, nil
}

// FindByID retrieves a lead by identifier. Malformed identifiers resolve to
// domain.ErrLeadNotFound rather than surfacing a parse error.
func (r *LeadRepository) FindByID(ctx context.Context, id string, includeDeleted bool) (*domain.Lead, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrLeadNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": oid}
	if !includeDeleted {
		filter["is_deleted"] = false
	}

	var doc leadDocument
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrLeadNotFound
		}
		return nil, fmt.Errorf("find lead: %w", err)
	}
	return toDomainLead(&doc), nil
}

// List returns one page of non-deleted leads, newest first, plus the total
// count of matches ignoring pagination.
func (r *LeadRepository) List(ctx context.Context, f ports.ListLeadsFilter) ([]*domain.Lead, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := listFilter(f)

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count leads: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64(f.Skip)).
		SetLimit(int64(f.Limit))

	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list leads: %w", err)
	}

	leads, err := decodeLeads(ctx, cursor)
	if err != nil {
		return nil, 0, fmt.Errorf("list leads: %w", err)
	}
	return leads, total, nil
}

// UpdateFields atomically applies the set fields and refreshes updated_at.
// Soft-deleted leads are filtered out of the lookup and report not-found.
func (r *LeadRepository) UpdateFields(ctx context.Context, id string, fields ports.UpdateLeadFields) (*domain.Lead, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	setIfPresent(set, "company_name", fields.CompanyName)
	setIfPresent(set, "email", fields.Email)
	setIfPresent(set, "mobile_number", fields.MobileNumber)
	setIfPresent(set, "sector", fields.Sector)
	setIfPresent(set, "status", fields.Status)
	setIfPresent(set, "notes", fields.Notes)
	setIfPresent(set, "next_follow_up_date", fields.NextFollowUpDate)
	setIfPresent(set, "assigned_to", fields.AssignedTo)

	return r.findOneAndUpdate(ctx, id, bson.M{"$set": set}, false)
}

// AppendInteraction pushes an entry onto the history array and refreshes
// updated_at in the same atomic update, so concurrent appends cannot lose
// an entry. Soft-deleted leads report not-found.
func (r *LeadRepository) AppendInteraction(ctx context.Context, id string, entry domain.Interaction) (*domain.Lead, error) {
	update := bson.M{
		"$push": bson.M{"interaction_history": interactionDocument{
			Timestamp: entry.Timestamp,
			Action:    entry.Action,
			Notes:     entry.Notes,
		}},
		"$set": bson.M{"updated_at": time.Now().UTC()},
	}
	return r.findOneAndUpdate(ctx, id, update, false)
}

// SoftDelete marks the lead deleted. The lookup deliberately skips the
// is_deleted filter so a second delete is an idempotent no-op.
func (r *LeadRepository) SoftDelete(ctx context.Context, id string) (*domain.Lead, error) {
	update := bson.M{"$set": bson.M{
		"is_deleted": true,
		"updated_at": time.Now().UTC(),
	}}
	return r.findOneAndUpdate(ctx, id, update, true)
}

// CountLeads returns the number of non-deleted leads matching the filter.
func (r *LeadRepository) CountLeads(ctx context.Context, f ports.StatsFilter) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	total, err := r.col.CountDocuments(ctx, statsFilter(f))
	if err != nil {
		return 0, fmt.Errorf("count leads: %w", err)
	}
	return total, nil
}

// GroupCount groups matching leads by the given field and returns
// value -> count.
func (r *LeadRepository) GroupCount(ctx context.Context, field string, f ports.StatsFilter) (map[string]int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: statsFilter(f)}},
		{{Key: "$group", Value: bson.M{
			"_id":   "$" + field,
			"count": bson.M{"$sum": 1},
		}}},
	}

	cursor, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("group leads by %s: %w", field, err)
	}

	var rows []struct {
		Value string `bson:"_id"`
		Count int64  `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("group leads by %s: %w", field, err)
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Value] = row.Count
	}
	return counts, nil
}

// FindUpcomingFollowUps returns up to limit leads with a non-empty
// next_follow_up_date, soonest first.
func (r *LeadRepository) FindUpcomingFollowUps(ctx context.Context, f ports.StatsFilter, limit int64) ([]*domain.Lead, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := statsFilter(f)
	filter["next_follow_up_date"] = bson.M{
		"$exists": true,
		"$nin":    bson.A{nil, ""},
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "next_follow_up_date", Value: 1}}).
		SetLimit(limit)

	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find upcoming follow-ups: %w", err)
	}
	return decodeLeads(ctx, cursor)
}

// FindRecentlyUpdated returns up to limit leads by updated_at descending.
func (r *LeadRepository) FindRecentlyUpdated(ctx context.Context, f ports.StatsFilter, limit int64) ([]*domain.Lead, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "updated_at", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.col.Find(ctx, statsFilter(f), opts)
	if err != nil {
		return nil, fmt.Errorf("find recently updated: %w", err)
	}
	return decodeLeads(ctx, cursor)
}

// EnsureIndexes creates the indexes backing list filters and stats queries.
func (r *LeadRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "updated_at", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "sector", Value: 1}}},
		{Keys: bson.D{{Key: "assigned_to", Value: 1}}},
		{Keys: bson.D{{Key: "is_deleted", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

// findOneAndUpdate runs one atomic conditional update and returns the
// post-update document. includeDeleted controls the asymmetry between
// SoftDelete and the other mutators.
func (r *LeadRepository) findOneAndUpdate(ctx context.Context, id string, update bson.M, includeDeleted bool) (*domain.Lead, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrLeadNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": oid}
	if !includeDeleted {
		filter["is_deleted"] = false
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc leadDocument
	if err := r.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrLeadNotFound
		}
		return nil, fmt.Errorf("update lead: %w", err)
	}
	return toDomainLead(&doc), nil
}

// listFilter builds the conjunctive list query. The search term is quoted
// before compiling the case-insensitive OR regex, so a term cannot inject
// regex syntax.
func listFilter(f ports.ListLeadsFilter) bson.M {
	filter := bson.M{"is_deleted": false}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.Sector != "" {
		filter["sector"] = f.Sector
	}
	if f.AssignedTo != "" {
		filter["assigned_to"] = f.AssignedTo
	}
	if f.Search != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(f.Search), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"company_name": pattern},
			bson.M{"email": pattern},
			bson.M{"mobile_number": pattern},
		}
	}
	return filter
}

func statsFilter(f ports.StatsFilter) bson.M {
	filter := bson.M{"is_deleted": false}
	if f.AssignedTo != "" {
		filter["assigned_to"] = f.AssignedTo
	}
	return filter
}

func setIfPresent(set bson.M, key string, value *string) {
	if value != nil {
		set[key] = *value
	}
}

func decodeLeads(ctx context.Context, cursor *mongo.Cursor) ([]*domain.Lead, error) {
	var docs []leadDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	leads := make([]*domain.Lead, 0, len(docs))
	for i := range docs {
		leads = append(leads, toDomainLead(&docs[i]))
	}
	return leads, nil
}

func toLeadDocument(l *domain.Lead) leadDocument {
	history := make([]interactionDocument, 0, len(l.InteractionHistory))
	for _, e := range l.InteractionHistory {
		history = append(history, interactionDocument{Timestamp: e.Timestamp, Action: e.Action, Notes: e.Notes})
	}
	return leadDocument{
		CompanyName:        l.CompanyName,
		Email:              l.Email,
		MobileNumber:       l.MobileNumber,
		Sector:             l.Sector,
		Status:             string(l.Status),
		Notes:              l.Notes,
		NextFollowUpDate:   l.NextFollowUpDate,
		CreatedBy:          l.CreatedBy,
		AssignedTo:         l.AssignedTo,
		CreatedAt:          l.CreatedAt,
		UpdatedAt:          l.UpdatedAt,
		IsDeleted:          l.IsDeleted,
		InteractionHistory: history,
	}
}

func toDomainLead(d *leadDocument) *domain.Lead {
	history := make([]domain.Interaction, 0, len(d.InteractionHistory))
	for _, e := range d.InteractionHistory {
		history = append(history, domain.Interaction{Timestamp: e.Timestamp, Action: e.Action, Notes: e.Notes})
	}
	return &domain.Lead{
		ID:                 d.ID.Hex(),
		CompanyName:        d.CompanyName,
		Email:              d.Email,
		MobileNumber:       d.MobileNumber,
		Sector:             d.Sector,
		Status:             domain.LeadStatus(d.Status),
		Notes:              d.Notes,
		NextFollowUpDate:   d.NextFollowUpDate,
		CreatedBy:          d.CreatedBy,
		AssignedTo:         d.AssignedTo,
		CreatedAt:          d.CreatedAt,
		UpdatedAt:          d.UpdatedAt,
		IsDeleted:          d.IsDeleted,
		InteractionHistory: history,
	}
}
