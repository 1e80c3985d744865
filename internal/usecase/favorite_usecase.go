package usecase

import (
	"context"
	stderrors "errors"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/cairogo-gateway/internal/domain"
	"github.com/cairogo-gateway/internal/domain/repository"
	"github.com/cairogo-gateway/internal/favorites"
	"github.com/cairogo-gateway/internal/pkg/errors"
	"github.com/cairogo-gateway/internal/usecase/dto"
)

// FavoriteUseCase - страница избранного и кнопки "в избранное"
type FavoriteUseCase struct {
	selector  *favorites.Selector
	catalogUC *CatalogUseCase
	logger    *zap.Logger
}

// NewFavoriteUseCase - создание нового FavoriteUseCase
func NewFavoriteUseCase(selector *favorites.Selector, catalogUC *CatalogUseCase, logger *zap.Logger) *FavoriteUseCase {
	return &FavoriteUseCase{
		selector:  selector,
		catalogUC: catalogUC,
		logger:    logger,
	}
}

// List - избранное, объединённое с каталогом
func (uc *FavoriteUseCase) List(ctx context.Context, sess repository.Session, q dto.FavoritesQuery) (*dto.FavoritesResponse, error) {
	ledger := uc.selector.For(sess)
	favs, err := ledger.List(ctx)
	if err != nil {
		uc.logger.Error("Failed to list favorites", zap.String("mode", string(ledger.Mode())), zap.Error(err))
		return nil, ledgerError(ledger.Mode(), err)
	}

	items, err := uc.catalogUC.Catalog(ctx, sess)
	if err != nil {
		// the ledger is still useful without the join
		uc.logger.Warn("Favorites listed without catalog", zap.Error(err))
		items = nil
	}
	byKey := make(map[string]domain.Attraction, len(items))
	for _, a := range items {
		byKey[favorites.KeyOf(ledger.Mode(), a)] = a
	}

	categories := make([]string, 0)
	views := make([]domain.FavoriteView, 0, len(favs))
	for _, f := range favs {
		if f.UserCategory != nil && *f.UserCategory != "" && !slices.Contains(categories, *f.UserCategory) {
			categories = append(categories, *f.UserCategory)
		}
		if !matchCategory(f, q.Category) {
			continue
		}
		view := domain.FavoriteView{Favorite: f}
		if a, ok := byKey[favorites.EntryKey(ledger.Mode(), f)]; ok {
			view.Attraction = &a
		}
		views = append(views, view)
	}
	slices.Sort(categories)
	sortFavorites(views, q.Sort)

	return &dto.FavoritesResponse{
		Mode:       string(ledger.Mode()),
		Items:      views,
		Total:      len(views),
		Categories: categories,
	}, nil
}

func matchCategory(f domain.Favorite, category string) bool {
	category = strings.TrimSpace(category)
	if category == "" {
		return true
	}
	return f.UserCategory != nil && strings.EqualFold(*f.UserCategory, category)
}

func sortFavorites(views []domain.FavoriteView, order string) {
	switch order {
	case dto.FavoritesTitle:
		slices.SortStableFunc(views, func(a, b domain.FavoriteView) int {
			return strings.Compare(strings.ToLower(viewTitle(a)), strings.ToLower(viewTitle(b)))
		})
	case dto.FavoritesOldest:
		slices.SortStableFunc(views, func(a, b domain.FavoriteView) int {
			return a.Favorite.CreatedAt.Compare(b.Favorite.CreatedAt)
		})
	default:
		slices.SortStableFunc(views, func(a, b domain.FavoriteView) int {
			return b.Favorite.CreatedAt.Compare(a.Favorite.CreatedAt)
		})
	}
}

func viewTitle(v domain.FavoriteView) string {
	if v.Attraction == nil {
		return ""
	}
	return v.Attraction.Title
}

// Add - добавление; повторное добавление не ошибка
func (uc *FavoriteUseCase) Add(ctx context.Context, sess repository.Session, ref string, category *string) error {
	ledger, key, err := uc.resolve(ctx, sess, ref)
	if err != nil {
		return err
	}
	if err := ledger.Add(ctx, key, category); err != nil {
		uc.logger.Error("Failed to add favorite", zap.String("key", key), zap.Error(err))
		return ledgerError(ledger.Mode(), err)
	}
	return nil
}

// Remove - удаление; отсутствующий элемент не ошибка
func (uc *FavoriteUseCase) Remove(ctx context.Context, sess repository.Session, ref string) error {
	ledger, key, err := uc.resolve(ctx, sess, ref)
	if err != nil {
		return err
	}
	if err := ledger.Remove(ctx, key); err != nil {
		uc.logger.Error("Failed to remove favorite", zap.String("key", key), zap.Error(err))
		return ledgerError(ledger.Mode(), err)
	}
	return nil
}

func (uc *FavoriteUseCase) Toggle(ctx context.Context, sess repository.Session, ref string) (*dto.ToggleResponse, error) {
	ledger, key, err := uc.resolve(ctx, sess, ref)
	if err != nil {
		return nil, err
	}
	on, err := ledger.Toggle(ctx, key)
	if err != nil {
		uc.logger.Error("Failed to toggle favorite", zap.String("key", key), zap.Error(err))
		return nil, ledgerError(ledger.Mode(), err)
	}
	return &dto.ToggleResponse{PlaceID: ref, IsFavorite: on}, nil
}

func (uc *FavoriteUseCase) IsFavorite(ctx context.Context, sess repository.Session, ref string) (bool, error) {
	ledger, key, err := uc.resolve(ctx, sess, ref)
	if err != nil {
		return false, err
	}
	on, err := ledger.IsFavorite(ctx, key)
	if err != nil {
		return false, ledgerError(ledger.Mode(), err)
	}
	return on, nil
}

// UpdateCategory - только для локального избранного
func (uc *FavoriteUseCase) UpdateCategory(ctx context.Context, sess repository.Session, ref string, category *string) error {
	ledger, key, err := uc.resolve(ctx, sess, ref)
	if err != nil {
		return err
	}
	editor, ok := ledger.(favorites.CategoryEditor)
	if !ok {
		return errors.ErrUnsupportedOperation
	}
	if err := editor.UpdateCategory(ctx, key, category); err != nil {
		return ledgerError(ledger.Mode(), err)
	}
	return nil
}

// Events - поток изменений избранного для сессии
func (uc *FavoriteUseCase) Events(ctx context.Context, sess repository.Session) (<-chan domain.FavoritesUpdated, error) {
	bus := uc.selector.Bus()
	if bus == nil {
		return nil, errors.ErrUnsupportedOperation
	}
	return bus.Subscribe(ctx, sess.Namespace())
}

// resolve picks the session's ledger and turns ref (catalog id or backend
// place id) into that ledger's key. Unknown refs are passed through as keys.
func (uc *FavoriteUseCase) resolve(ctx context.Context, sess repository.Session, ref string) (favorites.Ledger, string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, "", errors.ErrInvalidRequest
	}
	ledger := uc.selector.For(sess)

	items, err := uc.catalogUC.Catalog(ctx, sess)
	if err != nil {
		uc.logger.Debug("Catalog unavailable, using raw favorite key", zap.Error(err))
		return ledger, ref, nil
	}
	if a, ok := lookup(items, ref); ok {
		return ledger, favorites.KeyOf(ledger.Mode(), a), nil
	}
	return ledger, ref, nil
}

// ledgerError maps ledger failures: local ledgers only fail on storage or
// key errors, remote ones carry backend errors.
func ledgerError(mode favorites.Mode, err error) error {
	if mode == favorites.ModeLocal &&
		!stderrors.Is(err, favorites.ErrInvalidKey) &&
		!stderrors.Is(err, favorites.ErrNotFavorite) {
		return storageError(err)
	}
	return backendError(err, nil)
}
