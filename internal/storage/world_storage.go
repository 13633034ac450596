package storage

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/annel0/shapebuilder/internal/logging"
	"github.com/annel0/shapebuilder/internal/vec"
	"github.com/annel0/shapebuilder/internal/world"
	"github.com/annel0/shapebuilder/internal/world/block"
	"github.com/dgraph-io/badger/v3"
	"github.com/klauspost/compress/zstd"
)

// ErrStorageClosed возвращается после Close
var ErrStorageClosed = errors.New("world storage is closed")

// WorldStorage хранит мир в BadgerDB: одна запись на секцию 16x16x16,
// значение - секция, сжатая zstd. Секции из одного воздуха не хранятся.
//
// WorldStorage реализует world.Mutator. Ошибки записи логируются,
// первая из них доступна через Err.
type WorldStorage struct {
	db      *badger.DB
	dbPath  string
	encoder *zstd.Encoder
	decoder *zstd.Decoder
	logger  *logging.Logger

	mutex   sync.RWMutex
	isReady bool
	err     error
}

// NewWorldStorage открывает (или создаёт) хранилище в каталоге dataPath/world
func NewWorldStorage(dataPath string) (*WorldStorage, error) {
	dbPath := filepath.Join(dataPath, "world")
	opts := badger.DefaultOptions(dbPath)
	opts.Logger = nil // Отключаем логирование BadgerDB

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("не удалось открыть BadgerDB: %w", err)
	}

	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("zstd encoder: %w", err)
	}
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		encoder.Close()
		db.Close()
		return nil, fmt.Errorf("zstd decoder: %w", err)
	}

	return &WorldStorage{
		db:      db,
		dbPath:  dbPath,
		encoder: encoder,
		decoder: decoder,
		logger:  logging.GetStorageLogger(),
		isReady: true,
	}, nil
}

// Close закрывает хранилище данных
func (ws *WorldStorage) Close() error {
	ws.mutex.Lock()
	defer ws.mutex.Unlock()

	if !ws.isReady {
		return nil
	}

	ws.isReady = false
	ws.decoder.Close()
	ws.encoder.Close()
	return ws.db.Close()
}

// Err возвращает первую ошибку записи
func (ws *WorldStorage) Err() error {
	ws.mutex.RLock()
	defer ws.mutex.RUnlock()
	return ws.err
}

func sectionKey(coords vec.Vec3) []byte {
	return []byte(fmt.Sprintf("section:%d:%d:%d", coords.X, coords.Y, coords.Z))
}

// LoadSection читает секцию. Отсутствующая секция возвращается пустой.
func (ws *WorldStorage) LoadSection(coords vec.Vec3) (*world.Section, error) {
	ws.mutex.RLock()
	defer ws.mutex.RUnlock()

	if !ws.isReady {
		return nil, ErrStorageClosed
	}

	var s *world.Section
	err := ws.db.View(func(txn *badger.Txn) error {
		var err error
		s, err = ws.readSection(txn, coords)
		return err
	})
	return s, err
}

// GetBlock возвращает блок в глобальной координате
func (ws *WorldStorage) GetBlock(pos vec.Vec3) (block.BlockID, error) {
	s, err := ws.LoadSection(world.SectionCoords(pos))
	if err != nil {
		return block.AirBlockID, err
	}
	return s.GetBlock(world.LocalInSection(pos)), nil
}

// SectionCount возвращает число сохранённых секций
func (ws *WorldStorage) SectionCount() (int, error) {
	ws.mutex.RLock()
	defer ws.mutex.RUnlock()

	if !ws.isReady {
		return 0, ErrStorageClosed
	}

	count := 0
	err := ws.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte("section:")
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			count++
		}
		return nil
	})
	return count, err
}

// PlaceBlock реализует world.Mutator
func (ws *WorldStorage) PlaceBlock(id block.BlockID, pos vec.Vec3) {
	local := world.LocalInSection(pos)
	ws.update(world.SectionCoords(pos), func(s *world.Section) {
		s.SetBlock(local, id)
	})
}

// FillBox реализует world.Mutator. Каждая затронутая секция пишется отдельной транзакцией.
func (ws *WorldStorage) FillBox(id block.BlockID, box world.Box) {
	world.SplitBox(box, func(coords, from, to vec.Vec3) {
		ws.update(coords, func(s *world.Section) {
			s.FillLocal(from, to, id)
		})
	})
}

// update выполняет read-modify-write одной секции
func (ws *WorldStorage) update(coords vec.Vec3, fn func(s *world.Section)) {
	ws.mutex.RLock()
	ready := ws.isReady
	var err error
	if ready {
		err = ws.db.Update(func(txn *badger.Txn) error {
			s, err := ws.readSection(txn, coords)
			if err != nil {
				return err
			}
			fn(s)
			return ws.writeSection(txn, s)
		})
	}
	ws.mutex.RUnlock()

	if !ready {
		err = ErrStorageClosed
	}
	if err != nil {
		ws.fail(fmt.Errorf("секция %s: %w", coords, err))
	}
}

func (ws *WorldStorage) fail(err error) {
	ws.logger.Error("Ошибка записи в хранилище мира: %v", err)
	ws.mutex.Lock()
	if ws.err == nil {
		ws.err = err
	}
	ws.mutex.Unlock()
}

func (ws *WorldStorage) readSection(txn *badger.Txn, coords vec.Vec3) (*world.Section, error) {
	s := world.NewSection(coords)

	item, err := txn.Get(sectionKey(coords))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения из BadgerDB: %w", err)
	}

	err = item.Value(func(val []byte) error {
		raw, err := ws.decoder.DecodeAll(val, nil)
		if err != nil {
			return fmt.Errorf("zstd: %w", err)
		}
		return s.UnmarshalBinary(raw)
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (ws *WorldStorage) writeSection(txn *badger.Txn, s *world.Section) error {
	key := sectionKey(s.Coords)
	if s.IsEmpty() {
		err := txn.Delete(key)
		if err != nil {
			return fmt.Errorf("ошибка удаления из BadgerDB: %w", err)
		}
		return nil
	}

	raw, err := s.MarshalBinary()
	if err != nil {
		return err
	}
	if err := txn.Set(key, ws.encoder.EncodeAll(raw, nil)); err != nil {
		return fmt.Errorf("ошибка сохранения в BadgerDB: %w", err)
	}
	return nil
}
