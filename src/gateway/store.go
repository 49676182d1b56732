package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"nftfactory/src/registry"
	"nftfactory/src/utils/config"
	"nftfactory/src/utils/model"
	"nftfactory/src/utils/monitoring"
	"nftfactory/src/utils/task"

	"github.com/jackc/pgtype"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store persists the event log and mirrors registry state into row form.
// The in-memory registries stay authoritative, rows are refreshed from their
// snapshots on every flush and read back only at boot.
type Store struct {
	*task.SinkTask[*registry.Event]

	DB *gorm.DB

	factory     *registry.Factory
	factoryAddr registry.Address
	monitor     monitoring.Monitor
}

func NewStore(config *config.Config) (self *Store) {
	self = new(Store)

	self.SinkTask = task.NewSinkTask[*registry.Event](config, "store").
		WithBatchSize(config.Factory.StoreBatchSize).
		WithOnFlush(config.Factory.StoreInterval, self.flush)

	return
}

func (self *Store) WithDB(db *gorm.DB) *Store {
	self.DB = db
	return self
}

func (self *Store) WithFactory(factory *registry.Factory) *Store {
	self.factory = factory
	self.factoryAddr = factory.Address()
	return self
}

func (self *Store) WithMonitor(monitor monitoring.Monitor) *Store {
	self.monitor = monitor
	return self
}

func (self *Store) WithInputChannel(input chan *registry.Event) *Store {
	self.SinkTask = self.SinkTask.WithInputChannel(input)
	return self
}

func (self *Store) flush(events []*registry.Event) (err error) {
	if len(events) == 0 {
		return nil
	}

	err = task.NewRetry().
		WithContext(self.Ctx).
		WithMaxElapsedTime(self.Config.Factory.StoreMaxElapsedTime).
		WithMaxInterval(self.Config.Factory.StoreMaxInterval).
		WithOnError(func(err error) {
			self.Log.WithError(err).Warn("Failed to flush events, retrying")
			self.monitor.GetReport().Factory.Errors.DbEventInsert.Inc()
		}).
		Run(func() error {
			return self.insert(events)
		})
	if err != nil {
		self.Log.WithError(err).WithField("len", len(events)).Error("Failed to flush events, giving up")
	}
	return
}

func (self *Store) insert(events []*registry.Event) (err error) {
	rows := make([]*model.Event, len(events))
	for i, event := range events {
		rows[i], err = eventToRow(event)
		if err != nil {
			return
		}
	}

	// Collections touched by this batch, refreshed from snapshots below
	dirty := make(map[registry.Address]bool)

	return self.DB.WithContext(self.Ctx).
		Transaction(func(tx *gorm.DB) (err error) {
			err = tx.Clauses(clause.OnConflict{DoNothing: true}).
				CreateInBatches(rows, len(rows)).
				Error
			if err != nil {
				return
			}

			for _, event := range events {
				err = self.applyEvent(tx, event, dirty)
				if err != nil {
					return
				}
			}

			for addr := range dirty {
				err = self.saveCollection(tx, addr)
				if err != nil {
					return
				}
			}

			last := events[len(events)-1].Sequence
			return tx.Model(&model.State{Id: 1}).
				Update("last_sequence", last).
				Error
		})
}

// applyEvent mirrors one event into row state. Collection and token rows are
// handled once per batch through the dirty set instead.
func (self *Store) applyEvent(tx *gorm.DB, event *registry.Event, dirty map[registry.Address]bool) (err error) {
	switch event.Kind {
	case registry.EventProjectSubmitted, registry.EventProjectApproved, registry.EventProjectRejected:
		row := model.Project{
			Address: string(event.Submitter),
			Details: event.Details,
			Status:  int16(registry.ParseProjectStatus(event.Status)),
		}
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "address"}},
			DoUpdates: clause.AssignmentColumns([]string{"details", "status"}),
		}).Create(&row).Error

	case registry.EventAdminAdded:
		row := model.Admin{Address: string(event.Admin)}
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error

	case registry.EventAdminRemoved:
		return tx.Delete(&model.Admin{Address: string(event.Admin)}).Error

	case registry.EventOwnershipTransferred:
		if event.Registry == self.factoryAddr {
			return tx.Model(&model.State{Id: 1}).
				Update("owner", string(event.NewOwner)).
				Error
		}
		dirty[event.Registry] = true
		return nil

	case registry.EventCollectionCreated:
		dirty[event.Collection] = true

		// The registry's own pending project entry. Created once, later
		// decisions arrive as project events.
		row := model.Project{
			Address: string(event.Collection),
			Details: fmt.Sprintf("Collection: %s - %s", event.Name, event.Description),
			Status:  int16(registry.StatusPending),
		}
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error

	case registry.EventTokenMinted, registry.EventTokenSalePriceSet,
		registry.EventTokenForSale, registry.EventDefaultRoyaltySet:
		dirty[event.Registry] = true
		return nil
	}
	return nil
}

// saveCollection refreshes one collection's rows from its live snapshot.
func (self *Store) saveCollection(tx *gorm.DB, addr registry.Address) (err error) {
	col, err := self.factory.Collection(addr)
	if err != nil {
		// Event for a registry this factory doesn't hold, nothing to mirror
		self.Log.WithField("collection", addr).Warn("Skipping unknown collection")
		return nil
	}

	snap := col.Snapshot()
	creator, _ := self.factory.CollectionOwner(addr)

	row := model.Collection{
		Address:             string(snap.Address),
		Kind:                string(snap.Kind),
		Creator:             string(creator),
		Owner:               string(snap.Owner),
		Name:                varchar(snap.Name),
		Symbol:              varchar(snap.Symbol),
		Description:         varchar(snap.Description),
		MaxSupply:           snap.MaxSupply,
		TotalMinted:         snap.TotalMinted,
		RoyaltyReceiver:     varchar(string(snap.RoyaltyReceiver)),
		RoyaltyFeeNumerator: snap.RoyaltyFeeNumerator,
	}
	err = tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "address"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"owner", "total_minted", "royalty_receiver", "royalty_fee_numerator",
		}),
	}).Create(&row).Error
	if err != nil {
		return
	}

	if len(snap.Tokens) == 0 {
		return nil
	}

	tokens := make([]*model.Token, len(snap.Tokens))
	for i, token := range snap.Tokens {
		tokens[i], err = tokenToRow(snap.Address, &token)
		if err != nil {
			return
		}
	}
	return tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "collection_address"}, {Name: "token_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"uri", "holder", "amount", "balances",
			"price_gwei", "for_sale", "listing_start", "listing_end",
		}),
	}).CreateInBatches(tokens, len(tokens)).Error
}

// Hydrate rebuilds the in-memory registries from rows. Called once at boot,
// before any request is served.
func (self *Store) Hydrate(ctx context.Context) (err error) {
	var state model.State
	err = self.DB.WithContext(ctx).First(&state).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Fresh database, the config-seeded owner stays
			return nil
		}
		return
	}

	if state.Owner != "" {
		self.factory.RestoreOwner(registry.Address(state.Owner))
	}
	self.factory.RestoreSequence(state.LastSequence)

	var admins []model.Admin
	err = self.DB.WithContext(ctx).Find(&admins).Error
	if err != nil {
		return
	}
	for _, admin := range admins {
		self.factory.RestoreAdmin(registry.Address(admin.Address))
	}

	var projects []model.Project
	err = self.DB.WithContext(ctx).Find(&projects).Error
	if err != nil {
		return
	}
	for _, project := range projects {
		self.factory.RestoreProject(
			registry.Address(project.Address),
			project.Details,
			registry.ProjectStatus(project.Status),
		)
	}

	var collections []model.Collection
	err = self.DB.WithContext(ctx).Find(&collections).Error
	if err != nil {
		return
	}
	for _, collection := range collections {
		var tokens []*model.Token
		err = self.DB.WithContext(ctx).
			Where("collection_address = ?", collection.Address).
			Order("token_id ASC").
			Find(&tokens).Error
		if err != nil {
			return
		}

		var snap registry.CollectionSnapshot
		snap, err = rowToSnapshot(&collection, tokens)
		if err != nil {
			return
		}
		self.factory.RestoreCollection(snap)
	}

	self.Log.
		WithField("projects", len(projects)).
		WithField("collections", len(collections)).
		WithField("sequence", state.LastSequence).
		Info("Hydrated registries from the database")
	return
}

func eventToRow(event *registry.Event) (row *model.Event, err error) {
	payload, err := event.MarshalBinary()
	if err != nil {
		return
	}

	row = &model.Event{
		Sequence:  event.Sequence,
		EventId:   event.ID,
		Kind:      string(event.Kind),
		Registry:  string(event.Registry),
		Caller:    string(event.Caller),
		Timestamp: time.Unix(event.Timestamp, 0).UTC(),
	}
	err = row.Payload.Set(payload)
	return
}

func tokenToRow(addr registry.Address, token *registry.TokenSnapshot) (row *model.Token, err error) {
	row = &model.Token{
		CollectionAddress: string(addr),
		TokenID:           token.TokenID,
		Uri:               varchar(token.URI),
		Holder:            varchar(string(token.Holder)),
		Amount:            token.Amount,
		PriceGwei:         token.PriceGwei,
		ForSale:           token.ForSale,
		ListingStart:      token.ListingStart,
		ListingEnd:        token.ListingEnd,
	}
	if len(token.Balances) == 0 {
		err = row.Balances.Set(nil)
		return
	}
	var data []byte
	data, err = json.Marshal(token.Balances)
	if err != nil {
		return
	}
	err = row.Balances.Set(data)
	return
}

func rowToSnapshot(collection *model.Collection, tokens []*model.Token) (snap registry.CollectionSnapshot, err error) {
	snap = registry.CollectionSnapshot{
		Address:             registry.Address(collection.Address),
		Kind:                registry.CollectionKind(collection.Kind),
		Creator:             registry.Address(collection.Creator),
		Owner:               registry.Address(collection.Owner),
		Name:                collection.Name.String,
		Symbol:              collection.Symbol.String,
		Description:         collection.Description.String,
		MaxSupply:           collection.MaxSupply,
		TotalMinted:         collection.TotalMinted,
		RoyaltyReceiver:     registry.Address(collection.RoyaltyReceiver.String),
		RoyaltyFeeNumerator: collection.RoyaltyFeeNumerator,
	}

	for _, token := range tokens {
		entry := registry.TokenSnapshot{
			TokenID:      token.TokenID,
			URI:          token.Uri.String,
			Holder:       registry.Address(token.Holder.String),
			Amount:       token.Amount,
			PriceGwei:    token.PriceGwei,
			ForSale:      token.ForSale,
			ListingStart: token.ListingStart,
			ListingEnd:   token.ListingEnd,
		}
		if token.Balances.Status == pgtype.Present {
			err = json.Unmarshal(token.Balances.Bytes, &entry.Balances)
			if err != nil {
				return
			}
		}
		snap.Tokens = append(snap.Tokens, entry)
	}
	return
}

func varchar(s string) (out pgtype.Varchar) {
	out.String = s
	out.Status = pgtype.Present
	return
}
