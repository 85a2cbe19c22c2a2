package progression

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/sprayline/sprayline-server/internal/game"
	"github.com/sprayline/sprayline-server/internal/store"
)

const persistTimeout = 5 * time.Second

// Shop denial reasons. All recoverable; surfaced to the caller, never fatal.
var (
	ErrUnknownItem       = errors.New("unknown item")
	ErrAlreadyOwned      = errors.New("item already owned")
	ErrInsufficientFunds = errors.New("insufficient funds")
)

// PaintResult reports the rewards applied by a successful paint.
type PaintResult struct {
	FameEarned  int
	MoneyEarned int
	WantedLevel int
}

// ArrestResult reports the state after an arrest.
type ArrestResult struct {
	Money         int
	WantedLevel   int
	TimesArrested int
}

// Store is the single source of truth for player progression: fame,
// money, wanted level, spots, inventory, stats and the gallery. Every
// mutation happens under one mutex so read-modify-write sequences never
// interleave; SpendMoney in particular checks and decrements without any
// intervening suspension point.
//
// Persistence failures are logged and swallowed: the in-memory state
// stays authoritative for the session.
type Store struct {
	player       *PlayerState
	spots        map[string]*Spot
	spotOrder    []string
	gallery      []*GalleryPiece
	user         *User
	kv           store.KV
	galleryLimit int

	mu sync.Mutex
}

// NewStore creates a Store backed by the given KV, loading any previously
// persisted state. galleryLimit caps retained gallery pieces; zero selects
// the default of 100.
func NewStore(kv store.KV, galleryLimit int) *Store {
	if galleryLimit <= 0 {
		galleryLimit = game.DefaultGalleryLimit
	}
	s := &Store{
		player:       NewPlayerState(),
		spots:        make(map[string]*Spot),
		kv:           kv,
		galleryLimit: galleryLimit,
	}
	for _, spot := range DefaultSpots() {
		s.spots[spot.ID] = spot
		s.spotOrder = append(s.spotOrder, spot.ID)
	}
	s.load()
	return s
}

// AddFame adds fame and advances the best-fame high-water mark.
// Negative amounts are ignored.
func (s *Store) AddFame(amount int) {
	if amount < 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.player.Fame += amount
	if s.player.Fame > s.player.Stats.BestFame {
		s.player.Stats.BestFame = s.player.Fame
	}
	s.persistPlayerLocked()
}

// SpendMoney atomically checks and decrements the balance. Returns false
// with no mutation when the balance is insufficient or amount is negative.
func (s *Store) SpendMoney(amount int) bool {
	if amount < 0 {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.player.Money < amount {
		return false
	}
	s.player.Money -= amount
	s.persistPlayerLocked()
	return true
}

// PaintSpot applies the rewards for painting a spot with the given
// quality. Rewards use floor semantics. Painting an already-painted spot
// is a no-op returning false, so a repeat call can never double-award.
// A successful paint also resets the wanted level.
func (s *Store) PaintSpot(spotID string, quality float64) (PaintResult, bool) {
	if quality < 0 {
		quality = 0
	} else if quality > 1 {
		quality = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	spot, ok := s.spots[spotID]
	if !ok || spot.Painted {
		return PaintResult{}, false
	}

	fameEarned := int(math.Floor(float64(spot.FameReward) * quality))
	moneyEarned := int(math.Floor(float64(spot.MoneyReward) * quality))

	s.player.Fame += fameEarned
	if s.player.Fame > s.player.Stats.BestFame {
		s.player.Stats.BestFame = s.player.Fame
	}
	s.player.Money += moneyEarned
	s.player.WantedLevel = 0
	s.player.Stats.TotalPieces++
	s.player.Stats.SpotsPainted++

	spot.Painted = true
	spot.PlayerPiece = s.player.Inventory.SelectedDesign

	s.persistPlayerLocked()
	s.persistSpotsLocked()

	slog.Info("spot painted", "spot", spotID, "quality", quality, "fame", fameEarned, "money", moneyEarned)
	return PaintResult{
		FameEarned:  fameEarned,
		MoneyEarned: moneyEarned,
		WantedLevel: s.player.WantedLevel,
	}, true
}

// RaiseWanted increments the wanted level, capped at 5, and returns the
// new level. Called when an encounter ends in a bust.
func (s *Store) RaiseWanted() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.player.WantedLevel < game.MaxWantedLevel {
		s.player.WantedLevel++
	}
	s.persistPlayerLocked()
	return s.player.WantedLevel
}

// GetArrested applies the arrest penalty: 30% of money confiscated,
// wanted level cleared, arrest counter incremented.
func (s *Store) GetArrested() ArrestResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.player.Money = int(math.Floor(float64(s.player.Money) * game.ArrestMoneyKeepRatio))
	s.player.WantedLevel = 0
	s.player.Stats.TimesArrested++
	s.persistPlayerLocked()

	slog.Info("player arrested", "money", s.player.Money, "arrests", s.player.Stats.TimesArrested)
	return ArrestResult{
		Money:         s.player.Money,
		WantedLevel:   s.player.WantedLevel,
		TimesArrested: s.player.Stats.TimesArrested,
	}
}

// BuyColor atomically spends the catalog price and unlocks the color.
func (s *Store) BuyColor(id string) error {
	item, ok := ColorItem(id)
	if !ok {
		return ErrUnknownItem
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.player.ownsColor(id) {
		return ErrAlreadyOwned
	}
	if s.player.Money < item.Price {
		return ErrInsufficientFunds
	}
	s.player.Money -= item.Price
	s.player.Inventory.Colors = append(s.player.Inventory.Colors, id)
	s.persistPlayerLocked()
	return nil
}

// BuyDesign atomically spends the catalog price and unlocks the design.
func (s *Store) BuyDesign(id string) error {
	item, ok := DesignItem(id)
	if !ok {
		return ErrUnknownItem
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.player.ownsDesign(id) {
		return ErrAlreadyOwned
	}
	if s.player.Money < item.Price {
		return ErrInsufficientFunds
	}
	s.player.Money -= item.Price
	s.player.Inventory.Designs = append(s.player.Inventory.Designs, id)
	s.persistPlayerLocked()
	return nil
}

// UnlockColor adds a color to the unlock set without payment, e.g. for
// achievement grants. No-op on unknown or already-owned colors.
func (s *Store) UnlockColor(id string) bool {
	if _, ok := ColorItem(id); !ok {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.player.ownsColor(id) {
		return false
	}
	s.player.Inventory.Colors = append(s.player.Inventory.Colors, id)
	s.persistPlayerLocked()
	return true
}

// UnlockDesign adds a design to the unlock set without payment.
func (s *Store) UnlockDesign(id string) bool {
	if _, ok := DesignItem(id); !ok {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.player.ownsDesign(id) {
		return false
	}
	s.player.Inventory.Designs = append(s.player.Inventory.Designs, id)
	s.persistPlayerLocked()
	return true
}

// SelectColor changes the active color. Fails unless the color is owned.
func (s *Store) SelectColor(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.player.ownsColor(id) {
		return false
	}
	s.player.Inventory.SelectedColor = id
	s.persistPlayerLocked()
	return true
}

// SelectDesign changes the active design. Fails unless the design is owned.
func (s *Store) SelectDesign(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.player.ownsDesign(id) {
		return false
	}
	s.player.Inventory.SelectedDesign = id
	s.persistPlayerLocked()
	return true
}

// SaveToGallery prepends a piece (newest first) and truncates the oldest
// entries beyond the retention cap. The piece is stamped with the current
// user when it has no owner.
func (s *Store) SaveToGallery(piece *GalleryPiece) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if piece.UserID == "" && s.user != nil {
		piece.UserID = s.user.ID
	}
	s.gallery = append([]*GalleryPiece{piece}, s.gallery...)
	if len(s.gallery) > s.galleryLimit {
		s.gallery = s.gallery[:s.galleryLimit]
	}
	s.persistGalleryLocked()
}

// Gallery returns a copy of the gallery, newest first.
func (s *Store) Gallery() []GalleryPiece {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]GalleryPiece, 0, len(s.gallery))
	for _, p := range s.gallery {
		out = append(out, *p)
	}
	return out
}

// GetSpot returns a copy of a spot by id.
func (s *Store) GetSpot(id string) (Spot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	spot, ok := s.spots[id]
	if !ok {
		return Spot{}, false
	}
	return *spot, true
}

// Spots returns copies of all spots in catalog order.
func (s *Store) Spots() []Spot {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Spot, 0, len(s.spotOrder))
	for _, id := range s.spotOrder {
		out = append(out, *s.spots[id])
	}
	return out
}

// Snapshot returns a read-only copy of the player state for the UI.
func (s *Store) Snapshot() PlayerState {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := *s.player
	snap.Inventory.Colors = append([]string(nil), s.player.Inventory.Colors...)
	snap.Inventory.Designs = append([]string(nil), s.player.Inventory.Designs...)
	return snap
}

// SetCurrentUser records and persists the current-user pointer.
func (s *Store) SetCurrentUser(u User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.user = &u
	s.persistKeyLocked(store.KeyCurrentUser, &u)
}

// CurrentUser returns the current-user pointer, if set.
func (s *Store) CurrentUser() (User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user == nil {
		return User{}, false
	}
	return *s.user, true
}

// load restores persisted state, leaving defaults in place for anything
// missing or unreadable.
func (s *Store) load() {
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	if data, err := s.kv.Get(ctx, store.KeyPlayer); err != nil {
		slog.Warn("loading player state failed", "error", err)
	} else if data != nil {
		var p PlayerState
		if err := json.Unmarshal(data, &p); err != nil {
			slog.Warn("decoding player state failed", "error", err)
		} else {
			s.player = &p
		}
	}

	if data, err := s.kv.Get(ctx, store.KeySpots); err != nil {
		slog.Warn("loading spots failed", "error", err)
	} else if data != nil {
		var spots []*Spot
		if err := json.Unmarshal(data, &spots); err != nil {
			slog.Warn("decoding spots failed", "error", err)
		} else {
			for _, spot := range spots {
				if existing, ok := s.spots[spot.ID]; ok {
					existing.Painted = spot.Painted
					existing.PlayerPiece = spot.PlayerPiece
				}
			}
		}
	}

	if data, err := s.kv.Get(ctx, store.KeyGallery); err != nil {
		slog.Warn("loading gallery failed", "error", err)
	} else if data != nil {
		var gallery []*GalleryPiece
		if err := json.Unmarshal(data, &gallery); err != nil {
			slog.Warn("decoding gallery failed", "error", err)
		} else {
			s.gallery = gallery
		}
	}

	if data, err := s.kv.Get(ctx, store.KeyCurrentUser); err != nil {
		slog.Warn("loading current user failed", "error", err)
	} else if data != nil {
		var u User
		if err := json.Unmarshal(data, &u); err != nil {
			slog.Warn("decoding current user failed", "error", err)
		} else {
			s.user = &u
		}
	}
}

// Caller must hold s.mu.
func (s *Store) persistPlayerLocked() {
	s.persistKeyLocked(store.KeyPlayer, s.player)
}

// Caller must hold s.mu.
func (s *Store) persistSpotsLocked() {
	spots := make([]*Spot, 0, len(s.spotOrder))
	for _, id := range s.spotOrder {
		spots = append(spots, s.spots[id])
	}
	s.persistKeyLocked(store.KeySpots, spots)
}

// Caller must hold s.mu.
func (s *Store) persistGalleryLocked() {
	s.persistKeyLocked(store.KeyGallery, s.gallery)
}

// Caller must hold s.mu.
func (s *Store) persistKeyLocked(key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		slog.Warn("encoding state failed", "key", key, "error", err)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()
	if err := s.kv.Set(ctx, key, data); err != nil {
		slog.Warn("persisting state failed", "key", key, "error", err)
	}
}
