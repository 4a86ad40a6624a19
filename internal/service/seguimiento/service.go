package seguimiento

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"seguimiento-estructuras/internal/service/deviation"
	"seguimiento-estructuras/internal/service/etl"
	"seguimiento-estructuras/internal/storage"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNoDataset      = errors.New("no dataset loaded")
	ErrSeriesNotFound = errors.New("series not found")
)

type LoadStorage interface {
	SaveLoad(ctx context.Context, load storage.Load, series []storage.SeriesRecord) error
	GetLoads(ctx context.Context, limit int) ([]storage.Load, error)
	GetLastLoad(ctx context.Context) (*storage.Load, []storage.SeriesRecord, error)
	DeleteLoad(ctx context.Context, id string) error
}

type Upload struct {
	Name   string
	Reader io.Reader
}

// Dataset снимок одной загрузки. После создания не изменяется, заменяется целиком.
type Dataset struct {
	Load   storage.Load
	Series []storage.SeriesRecord
	Models []string
	byKey  map[string]int
}

func newDataset(load storage.Load, series []storage.SeriesRecord) *Dataset {
	if series == nil {
		series = []storage.SeriesRecord{}
	}

	byKey := make(map[string]int, len(series))
	for i, s := range series {
		if _, exists := byKey[s.Key()]; !exists {
			byKey[s.Key()] = i
		}
	}

	return &Dataset{
		Load:   load,
		Series: series,
		Models: deviation.UniqueModels(series),
		byKey:  byKey,
	}
}

type Service struct {
	log     *slog.Logger
	storage LoadStorage

	mu      sync.RWMutex
	current *Dataset

	now func() time.Time
}

func NewService(log *slog.Logger, storage LoadStorage) *Service {
	return &Service{
		log:     log,
		storage: storage,
		now:     time.Now,
	}
}

// Load разбирает два файла, сохраняет историю и заменяет текущий набор данных.
// Ошибка сохранения в БД не мешает работе с данными в памяти.
func (s *Service) Load(ctx context.Context, planning, fichajes Upload) (*storage.Load, error) {
	const op = "service.seguimiento.Load"

	result, err := etl.Process(ctx, planning.Reader, fichajes.Reader)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	load := storage.Load{
		ID:           uuid.NewString(),
		PlanningFile: planning.Name,
		FichajesFile: fichajes.Name,
		Summary:      result.Summary,
		CreatedAt:    s.now(),
	}

	if err := s.storage.SaveLoad(ctx, load, result.Series); err != nil {
		s.log.Error("failed to persist load",
			slog.String("op", op),
			slog.String("load_id", load.ID),
			slog.String("error", err.Error()),
		)
	}

	s.swap(newDataset(load, result.Series))

	s.log.Info("dataset loaded",
		slog.String("load_id", load.ID),
		slog.Int("total", load.Summary.Total),
		slog.Int("processed", load.Summary.Processed),
		slog.Int("skipped", load.Summary.Skipped),
	)

	return &load, nil
}

// Restore поднимает последнюю сохранённую загрузку при старте.
func (s *Service) Restore(ctx context.Context) error {
	const op = "service.seguimiento.Restore"

	load, series, err := s.storage.GetLastLoad(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrLoadNotFound) {
			s.log.Info("no previous load to restore")
			return nil
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	s.swap(newDataset(*load, series))
	s.log.Info("dataset restored", slog.String("load_id", load.ID), slog.Int("series", len(series)))

	return nil
}

func (s *Service) Reset() {
	s.swap(nil)
}

func (s *Service) swap(ds *Dataset) {
	s.mu.Lock()
	s.current = ds
	s.mu.Unlock()
}

func (s *Service) Current() (*Dataset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return nil, ErrNoDataset
	}
	return s.current, nil
}

type QueryParams struct {
	Filters   deviation.Filters
	Sort      deviation.SortColumn
	Ascending bool
	Page      int
	PageSize  int
}

type QueryResult struct {
	deviation.Page[deviation.ClassifiedSeries]
	KPIs deviation.KPISummary `json:"kpis"`
	Load storage.Load         `json:"load"`
}

// Filtered фильтр + сортировка + KPI по отфильтрованному набору, без пагинации.
func (s *Service) Filtered(p QueryParams) ([]storage.SeriesRecord, deviation.KPISummary, error) {
	ds, err := s.Current()
	if err != nil {
		return nil, deviation.KPISummary{}, err
	}

	filtered, kpis := ds.filter(p)
	return filtered, kpis, nil
}

func (ds *Dataset) filter(p QueryParams) ([]storage.SeriesRecord, deviation.KPISummary) {
	filtered := deviation.FilterSeries(ds.Series, p.Filters)
	if p.Sort != "" {
		filtered = deviation.SortSeries(filtered, p.Sort, p.Ascending)
	}

	return filtered, deviation.ComputeKPIs(filtered)
}

func (s *Service) Query(p QueryParams) (*QueryResult, error) {
	ds, err := s.Current()
	if err != nil {
		return nil, err
	}

	// один снимок на весь запрос: строки и Load всегда из одной загрузки
	filtered, kpis := ds.filter(p)

	page := deviation.Paginate(filtered, p.Page, p.PageSize)

	return &QueryResult{
		Page: deviation.Page[deviation.ClassifiedSeries]{
			Items:      deviation.ClassifyAll(page.Items),
			Page:       page.Page,
			PageSize:   page.PageSize,
			TotalPages: page.TotalPages,
			TotalItems: page.TotalItems,
		},
		KPIs: kpis,
		Load: ds.Load,
	}, nil
}

func (s *Service) Series(key string) (*deviation.SeriesDetail, error) {
	ds, err := s.Current()
	if err != nil {
		return nil, err
	}

	i, ok := ds.byKey[key]
	if !ok {
		return nil, fmt.Errorf("key=%s: %w", key, ErrSeriesNotFound)
	}

	detail := deviation.OperationDetail(ds.Series[i])
	return &detail, nil
}

func (s *Service) Models() ([]string, error) {
	ds, err := s.Current()
	if err != nil {
		return nil, err
	}
	return ds.Models, nil
}

func (s *Service) History(ctx context.Context, limit int) ([]storage.Load, error) {
	const op = "service.seguimiento.History"

	loads, err := s.storage.GetLoads(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return loads, nil
}

func (s *Service) DeleteLoad(ctx context.Context, id string) error {
	const op = "service.seguimiento.DeleteLoad"

	if err := s.storage.DeleteLoad(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
