package block

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
)

// BlockID представляет идентификатор материала. Ядро не интерпретирует его структуру.
type BlockID uint16

// Константы ID блоков
const (
	// Базовые типы блоков
	AirBlockID   BlockID = iota // 0, "пустой" блок для очистки объёма
	StoneBlockID                // 1
	GrassBlockID                // 2
	WaterBlockID                // 3
	SandBlockID                 // 4
	DirtBlockID                 // 5

	// Строительные блоки (начиная с 100)
	GlassBlockID  BlockID = 100
	PlanksBlockID BlockID = 101
	BrickBlockID  BlockID = 102
	WoolBlockID   BlockID = 103
)

// ErrUnknownBlock возвращается, когда имя материала не зарегистрировано
var ErrUnknownBlock = errors.New("unknown block")

var (
	registryMu sync.RWMutex
	byID       = make(map[BlockID]string)
	byName     = make(map[string]BlockID)
)

func init() {
	Register(AirBlockID, "air")
	Register(StoneBlockID, "stone")
	Register(GrassBlockID, "grass")
	Register(WaterBlockID, "water")
	Register(SandBlockID, "sand")
	Register(DirtBlockID, "dirt")
	Register(GlassBlockID, "glass")
	Register(PlanksBlockID, "planks")
	Register(BrickBlockID, "brick")
	Register(WoolBlockID, "wool")
}

// Register добавляет имя материала в регистр. Повторная регистрация перезаписывает имя.
func Register(id BlockID, name string) {
	name = strings.ToLower(strings.TrimSpace(name))

	registryMu.Lock()
	defer registryMu.Unlock()

	if old, ok := byID[id]; ok {
		delete(byName, old)
	}
	byID[id] = name
	byName[name] = id
}

// Name возвращает имя материала
func Name(id BlockID) (string, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	name, ok := byID[id]
	return name, ok
}

// Lookup разбирает имя материала или его числовой ID
func Lookup(s string) (BlockID, error) {
	s = strings.ToLower(strings.TrimSpace(s))

	registryMu.RLock()
	id, ok := byName[s]
	registryMu.RUnlock()
	if ok {
		return id, nil
	}

	n, err := strconv.ParseUint(s, 10, 16)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrUnknownBlock, s)
	}
	return BlockID(n), nil
}

// Names возвращает отсортированный список зарегистрированных имён
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// String возвращает имя блока или его номер
func (id BlockID) String() string {
	if name, ok := Name(id); ok {
		return name
	}
	return strconv.Itoa(int(id))
}
