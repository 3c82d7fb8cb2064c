// Package mongo implements store.Store on MongoDB. Apply batches run
// inside a causally-consistent session transaction, so the backend
// requires a replica set.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/xraph/walletledger"
	"github.com/xraph/walletledger/account"
	"github.com/xraph/walletledger/activation"
	"github.com/xraph/walletledger/journal"
	"github.com/xraph/walletledger/kyc"
	"github.com/xraph/walletledger/referral"
	"github.com/xraph/walletledger/request"
	walletstore "github.com/xraph/walletledger/store"
	"github.com/xraph/walletledger/task"
)

// Collection name constants.
const (
	colAccounts        = "wallet_accounts"
	colEntries         = "wallet_entries"
	colDeposits        = "wallet_deposits"
	colWithdrawals     = "wallet_withdrawals"
	colActivations     = "wallet_activations"
	colTasks           = "wallet_tasks"
	colReferralIncomes = "wallet_referral_incomes"
	colKYC             = "wallet_kyc_applications"
	colCounters        = "wallet_counters"
)

// compile-time interface check
var _ walletstore.Store = (*Store)(nil)

// Store implements store.Store using MongoDB.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// New wraps an already-connected client.
func New(client *mongo.Client, dbName string) *Store {
	return &Store{
		client: client,
		db:     client.Database(dbName),
	}
}

// Open connects to the given MongoDB URI.
func Open(uri, dbName string) (*Store, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("walletledger/mongo: connect: %w", err)
	}
	return New(client, dbName), nil
}

// DB returns the underlying database handle for direct access.
func (s *Store) DB() *mongo.Database { return s.db }

// Migrate creates indexes for all collections.
func (s *Store) Migrate(ctx context.Context) error {
	indexes := map[string][]mongo.IndexModel{
		colAccounts: {
			{Keys: bson.D{{Key: "public_id", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "role", Value: 1}, {Key: "status", Value: 1}}},
		},
		colEntries: {
			{Keys: bson.D{{Key: "account_uid", Value: 1}, {Key: "created_at", Value: -1}}},
			{Keys: bson.D{{Key: "category", Value: 1}}},
		},
		colDeposits: {
			{Keys: bson.D{{Key: "account_uid", Value: 1}}},
			{Keys: bson.D{{Key: "status", Value: 1}}},
		},
		colWithdrawals: {
			{Keys: bson.D{{Key: "account_uid", Value: 1}}},
			{Keys: bson.D{{Key: "status", Value: 1}}},
		},
		colActivations: {
			{Keys: bson.D{{Key: "account_uid", Value: 1}, {Key: "status", Value: 1}}},
			{Keys: bson.D{{Key: "status", Value: 1}, {Key: "valid_till", Value: 1}}},
		},
		colTasks: {
			{Keys: bson.D{{Key: "account_uid", Value: 1}, {Key: "date", Value: 1}}},
		},
		colReferralIncomes: {
			{Keys: bson.D{{Key: "sponsor_id", Value: 1}}},
		},
		colKYC: {
			{Keys: bson.D{{Key: "status", Value: 1}}},
		},
	}

	for col, models := range indexes {
		if _, err := s.db.Collection(col).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("%w: %s indexes: %v", walletledger.ErrMigrationFailed, col, err)
		}
	}
	return nil
}

// Ping checks database connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

// Close disconnects the client.
func (s *Store) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

// ==================== Account reads ====================

func (s *Store) GetAccount(ctx context.Context, uid string) (*account.Account, error) {
	var m accountModel
	err := s.db.Collection(colAccounts).FindOne(ctx, bson.M{"_id": uid}).Decode(&m)
	if err != nil {
		if isNoDocuments(err) {
			return nil, walletledger.ErrAccountNotFound
		}
		return nil, fmt.Errorf("walletledger/mongo: get account: %w", err)
	}
	return fromAccountModel(&m), nil
}

func (s *Store) GetAccountByPublicID(ctx context.Context, publicID string) (*account.Account, error) {
	var m accountModel
	err := s.db.Collection(colAccounts).FindOne(ctx, bson.M{"public_id": publicID}).Decode(&m)
	if err != nil {
		if isNoDocuments(err) {
			return nil, walletledger.ErrAccountNotFound
		}
		return nil, fmt.Errorf("walletledger/mongo: get account by public id: %w", err)
	}
	return fromAccountModel(&m), nil
}

func (s *Store) GetAccountByEmail(ctx context.Context, email string) (*account.Account, error) {
	var m accountModel
	err := s.db.Collection(colAccounts).FindOne(ctx, bson.M{"email": email}).Decode(&m)
	if err != nil {
		if isNoDocuments(err) {
			return nil, walletledger.ErrAccountNotFound
		}
		return nil, fmt.Errorf("walletledger/mongo: get account by email: %w", err)
	}
	return fromAccountModel(&m), nil
}

func (s *Store) ListAccounts(ctx context.Context, opts account.ListOpts) ([]*account.Account, error) {
	filter := bson.M{}
	if opts.Role != "" {
		filter["role"] = string(opts.Role)
	}
	if opts.Status != "" {
		filter["status"] = string(opts.Status)
	}

	findOpts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if opts.Limit > 0 {
		findOpts = findOpts.SetLimit(int64(opts.Limit))
	}
	if opts.Offset > 0 {
		findOpts = findOpts.SetSkip(int64(opts.Offset))
	}

	cursor, err := s.db.Collection(colAccounts).Find(ctx, filter, findOpts)
	if err != nil {
		return nil, fmt.Errorf("walletledger/mongo: list accounts: %w", err)
	}

	var models []accountModel
	if err := cursor.All(ctx, &models); err != nil {
		return nil, fmt.Errorf("walletledger/mongo: list accounts: %w", err)
	}

	result := make([]*account.Account, len(models))
	for i := range models {
		result[i] = fromAccountModel(&models[i])
	}
	return result, nil
}

// ==================== Journal reads ====================

func (s *Store) GetEntry(ctx context.Context, entryID string) (*journal.Entry, error) {
	var m entryModel
	err := s.db.Collection(colEntries).FindOne(ctx, bson.M{"_id": entryID}).Decode(&m)
	if err != nil {
		if isNoDocuments(err) {
			return nil, walletledger.ErrEntryNotFound
		}
		return nil, fmt.Errorf("walletledger/mongo: get entry: %w", err)
	}
	return fromEntryModel(&m), nil
}

func (s *Store) ListEntries(ctx context.Context, opts journal.ListOpts) ([]*journal.Entry, error) {
	filter := bson.M{}
	if opts.AccountUID != "" {
		filter["account_uid"] = opts.AccountUID
	}
	if opts.Category != "" {
		filter["category"] = string(opts.Category)
	}

	findOpts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if opts.Limit > 0 {
		findOpts = findOpts.SetLimit(int64(opts.Limit))
	}
	if opts.Offset > 0 {
		findOpts = findOpts.SetSkip(int64(opts.Offset))
	}

	cursor, err := s.db.Collection(colEntries).Find(ctx, filter, findOpts)
	if err != nil {
		return nil, fmt.Errorf("walletledger/mongo: list entries: %w", err)
	}

	var models []entryModel
	if err := cursor.All(ctx, &models); err != nil {
		return nil, fmt.Errorf("walletledger/mongo: list entries: %w", err)
	}

	result := make([]*journal.Entry, len(models))
	for i := range models {
		result[i] = fromEntryModel(&models[i])
	}
	return result, nil
}

// ==================== Deposit reads ====================

func (s *Store) GetDeposit(ctx context.Context, depositID string) (*request.Deposit, error) {
	var m depositModel
	err := s.db.Collection(colDeposits).FindOne(ctx, bson.M{"_id": depositID}).Decode(&m)
	if err != nil {
		if isNoDocuments(err) {
			return nil, walletledger.ErrDepositNotFound
		}
		return nil, fmt.Errorf("walletledger/mongo: get deposit: %w", err)
	}
	return fromDepositModel(&m), nil
}

func (s *Store) ListDeposits(ctx context.Context, opts request.ListOpts) ([]*request.Deposit, error) {
	filter := bson.M{}
	if opts.AccountUID != "" {
		filter["account_uid"] = opts.AccountUID
	}
	if opts.Status != "" {
		filter["status"] = string(opts.Status)
	}

	findOpts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if opts.Limit > 0 {
		findOpts = findOpts.SetLimit(int64(opts.Limit))
	}
	if opts.Offset > 0 {
		findOpts = findOpts.SetSkip(int64(opts.Offset))
	}

	cursor, err := s.db.Collection(colDeposits).Find(ctx, filter, findOpts)
	if err != nil {
		return nil, fmt.Errorf("walletledger/mongo: list deposits: %w", err)
	}

	var models []depositModel
	if err := cursor.All(ctx, &models); err != nil {
		return nil, fmt.Errorf("walletledger/mongo: list deposits: %w", err)
	}

	result := make([]*request.Deposit, len(models))
	for i := range models {
		result[i] = fromDepositModel(&models[i])
	}
	return result, nil
}

// ==================== Withdrawal reads ====================

func (s *Store) GetWithdrawal(ctx context.Context, withdrawalID string) (*request.Withdrawal, error) {
	var m withdrawalModel
	err := s.db.Collection(colWithdrawals).FindOne(ctx, bson.M{"_id": withdrawalID}).Decode(&m)
	if err != nil {
		if isNoDocuments(err) {
			return nil, walletledger.ErrWithdrawalNotFound
		}
		return nil, fmt.Errorf("walletledger/mongo: get withdrawal: %w", err)
	}
	return fromWithdrawalModel(&m), nil
}

func (s *Store) ListWithdrawals(ctx context.Context, opts request.ListOpts) ([]*request.Withdrawal, error) {
	filter := bson.M{}
	if opts.AccountUID != "" {
		filter["account_uid"] = opts.AccountUID
	}
	if opts.Status != "" {
		filter["status"] = string(opts.Status)
	}

	findOpts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if opts.Limit > 0 {
		findOpts = findOpts.SetLimit(int64(opts.Limit))
	}
	if opts.Offset > 0 {
		findOpts = findOpts.SetSkip(int64(opts.Offset))
	}

	cursor, err := s.db.Collection(colWithdrawals).Find(ctx, filter, findOpts)
	if err != nil {
		return nil, fmt.Errorf("walletledger/mongo: list withdrawals: %w", err)
	}

	var models []withdrawalModel
	if err := cursor.All(ctx, &models); err != nil {
		return nil, fmt.Errorf("walletledger/mongo: list withdrawals: %w", err)
	}

	result := make([]*request.Withdrawal, len(models))
	for i := range models {
		result[i] = fromWithdrawalModel(&models[i])
	}
	return result, nil
}

// ==================== Activation reads ====================

func (s *Store) GetActivation(ctx context.Context, activationID string) (*activation.Record, error) {
	var m activationModel
	err := s.db.Collection(colActivations).FindOne(ctx, bson.M{"_id": activationID}).Decode(&m)
	if err != nil {
		if isNoDocuments(err) {
			return nil, walletledger.ErrActivationNotFound
		}
		return nil, fmt.Errorf("walletledger/mongo: get activation: %w", err)
	}
	return fromActivationModel(&m), nil
}

func (s *Store) ListActivations(ctx context.Context, accountUID string, status activation.Status) ([]*activation.Record, error) {
	filter := bson.M{"account_uid": accountUID}
	if status != "" {
		filter["status"] = string(status)
	}

	cursor, err := s.db.Collection(colActivations).Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("walletledger/mongo: list activations: %w", err)
	}

	var models []activationModel
	if err := cursor.All(ctx, &models); err != nil {
		return nil, fmt.Errorf("walletledger/mongo: list activations: %w", err)
	}

	result := make([]*activation.Record, len(models))
	for i := range models {
		result[i] = fromActivationModel(&models[i])
	}
	return result, nil
}

func (s *Store) ListExpiredActivations(ctx context.Context, before time.Time, limit int) ([]*activation.Record, error) {
	filter := bson.M{
		"status":     string(activation.StatusActive),
		"valid_till": bson.M{"$lt": before},
	}

	findOpts := options.Find().SetSort(bson.D{{Key: "valid_till", Value: 1}})
	if limit > 0 {
		findOpts = findOpts.SetLimit(int64(limit))
	}

	cursor, err := s.db.Collection(colActivations).Find(ctx, filter, findOpts)
	if err != nil {
		return nil, fmt.Errorf("walletledger/mongo: list expired activations: %w", err)
	}

	var models []activationModel
	if err := cursor.All(ctx, &models); err != nil {
		return nil, fmt.Errorf("walletledger/mongo: list expired activations: %w", err)
	}

	result := make([]*activation.Record, len(models))
	for i := range models {
		result[i] = fromActivationModel(&models[i])
	}
	return result, nil
}

// ==================== Task reads ====================

func (s *Store) ListTasks(ctx context.Context, accountUID string, date string) ([]*task.Record, error) {
	filter := bson.M{"account_uid": accountUID}
	if date != "" {
		filter["date"] = date
	}

	cursor, err := s.db.Collection(colTasks).Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("walletledger/mongo: list tasks: %w", err)
	}

	var models []taskModel
	if err := cursor.All(ctx, &models); err != nil {
		return nil, fmt.Errorf("walletledger/mongo: list tasks: %w", err)
	}

	result := make([]*task.Record, len(models))
	for i := range models {
		result[i] = fromTaskModel(&models[i])
	}
	return result, nil
}

// ==================== Referral reads ====================

func (s *Store) ListReferralIncomes(ctx context.Context, sponsorID string) ([]*referral.IncomeRecord, error) {
	cursor, err := s.db.Collection(colReferralIncomes).Find(ctx,
		bson.M{"sponsor_id": sponsorID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("walletledger/mongo: list referral incomes: %w", err)
	}

	var models []referralIncomeModel
	if err := cursor.All(ctx, &models); err != nil {
		return nil, fmt.Errorf("walletledger/mongo: list referral incomes: %w", err)
	}

	result := make([]*referral.IncomeRecord, len(models))
	for i := range models {
		result[i] = fromReferralIncomeModel(&models[i])
	}
	return result, nil
}

// ==================== KYC reads ====================

func (s *Store) GetKYCApplication(ctx context.Context, applicationID string) (*kyc.Application, error) {
	var m kycModel
	err := s.db.Collection(colKYC).FindOne(ctx, bson.M{"_id": applicationID}).Decode(&m)
	if err != nil {
		if isNoDocuments(err) {
			return nil, walletledger.ErrKYCNotFound
		}
		return nil, fmt.Errorf("walletledger/mongo: get kyc application: %w", err)
	}
	return fromKYCModel(&m), nil
}

func (s *Store) ListKYCApplications(ctx context.Context, status kyc.Status) ([]*kyc.Application, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = string(status)
	}

	cursor, err := s.db.Collection(colKYC).Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("walletledger/mongo: list kyc applications: %w", err)
	}

	var models []kycModel
	if err := cursor.All(ctx, &models); err != nil {
		return nil, fmt.Errorf("walletledger/mongo: list kyc applications: %w", err)
	}

	result := make([]*kyc.Application, len(models))
	for i := range models {
		result[i] = fromKYCModel(&models[i])
	}
	return result, nil
}

// ==================== Counter ====================

func (s *Store) NextAccountSeq(ctx context.Context) (int64, error) {
	var doc struct {
		Value int64 `bson:"value"`
	}
	err := s.db.Collection(colCounters).FindOneAndUpdate(ctx,
		bson.M{"_id": "account_seq"},
		bson.M{"$inc": bson.M{"value": 1}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", walletledger.ErrCounterUnavailable, err)
	}
	return doc.Value, nil
}

// ==================== Apply ====================

// Apply commits the given writes inside a single session transaction.
func (s *Store) Apply(ctx context.Context, writes ...walletstore.Write) error {
	sess, err := s.client.StartSession()
	if err != nil {
		return fmt.Errorf("%w: %v", walletledger.ErrTransactionFailed, err)
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(ctx context.Context) (any, error) {
		for _, w := range writes {
			if err := s.applyWrite(ctx, w); err != nil {
				return nil, err
			}
		}
		return nil, nil
	})
	return err
}

func (s *Store) applyWrite(ctx context.Context, w walletstore.Write) error {
	switch w := w.(type) {
	case walletstore.PutAccount:
		_, err := s.db.Collection(colAccounts).InsertOne(ctx, toAccountModel(w.Account))
		if mongo.IsDuplicateKeyError(err) {
			return walletledger.ErrAlreadyExists
		}
		return err
	case walletstore.UpdateAccount:
		m := toAccountModel(w.Account)
		m.Version = w.ExpectedVersion + 1
		m.UpdatedAt = time.Now()
		res, err := s.db.Collection(colAccounts).ReplaceOne(ctx,
			bson.M{"_id": m.UID, "version": w.ExpectedVersion}, m)
		if err != nil {
			return err
		}
		if res.MatchedCount == 0 {
			count, err := s.db.Collection(colAccounts).CountDocuments(ctx, bson.M{"_id": m.UID})
			if err != nil {
				return err
			}
			if count == 0 {
				return walletledger.ErrAccountNotFound
			}
			return walletledger.ErrVersionConflict
		}
		return nil
	case walletstore.AppendEntry:
		_, err := s.db.Collection(colEntries).InsertOne(ctx, toEntryModel(w.Entry))
		if mongo.IsDuplicateKeyError(err) {
			return walletledger.ErrAlreadyExists
		}
		return err
	case walletstore.PutDeposit:
		_, err := s.db.Collection(colDeposits).InsertOne(ctx, toDepositModel(w.Deposit))
		if mongo.IsDuplicateKeyError(err) {
			return walletledger.ErrAlreadyExists
		}
		return err
	case walletstore.UpdateDeposit:
		return s.replaceByID(ctx, colDeposits, w.Deposit.ID, toDepositModel(w.Deposit), walletledger.ErrDepositNotFound)
	case walletstore.PutWithdrawal:
		_, err := s.db.Collection(colWithdrawals).InsertOne(ctx, toWithdrawalModel(w.Withdrawal))
		if mongo.IsDuplicateKeyError(err) {
			return walletledger.ErrAlreadyExists
		}
		return err
	case walletstore.UpdateWithdrawal:
		return s.replaceByID(ctx, colWithdrawals, w.Withdrawal.ID, toWithdrawalModel(w.Withdrawal), walletledger.ErrWithdrawalNotFound)
	case walletstore.PutActivation:
		_, err := s.db.Collection(colActivations).InsertOne(ctx, toActivationModel(w.Record))
		if mongo.IsDuplicateKeyError(err) {
			return walletledger.ErrAlreadyExists
		}
		return err
	case walletstore.UpdateActivation:
		return s.replaceByID(ctx, colActivations, w.Record.ID, toActivationModel(w.Record), walletledger.ErrActivationNotFound)
	case walletstore.PutTask:
		_, err := s.db.Collection(colTasks).InsertOne(ctx, toTaskModel(w.Record))
		if mongo.IsDuplicateKeyError(err) {
			return walletledger.ErrAlreadyExists
		}
		return err
	case walletstore.PutReferralIncome:
		_, err := s.db.Collection(colReferralIncomes).InsertOne(ctx, toReferralIncomeModel(w.Record))
		if mongo.IsDuplicateKeyError(err) {
			return walletledger.ErrAlreadyExists
		}
		return err
	case walletstore.PutKYCApplication:
		_, err := s.db.Collection(colKYC).InsertOne(ctx, toKYCModel(w.Application))
		if mongo.IsDuplicateKeyError(err) {
			return walletledger.ErrAlreadyExists
		}
		return err
	case walletstore.UpdateKYCApplication:
		return s.replaceByID(ctx, colKYC, w.Application.ID, toKYCModel(w.Application), walletledger.ErrKYCNotFound)
	default:
		return walletledger.ErrInvalidInput
	}
}

func (s *Store) replaceByID(ctx context.Context, col, id string, doc any, notFound error) error {
	res, err := s.db.Collection(col).ReplaceOne(ctx, bson.M{"_id": id}, doc)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return notFound
	}
	return nil
}

func isNoDocuments(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}
