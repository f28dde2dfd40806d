// Package catalog holds the static exercise content for every practice module.
// The tables are built once at init and never mutated; accessors hand out copies.
package catalog

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned for unknown module keys and out-of-range indices.
var ErrNotFound = errors.New("catalog: not found")

type Strategy string

const (
	StrategyRubric Strategy = "rubric"
	StrategyMatch  Strategy = "match"
)

type ModuleKey string

const (
	ReadAloud    ModuleKey = "read_aloud"
	ListenRepeat ModuleKey = "listen_repeat"
	Topic        ModuleKey = "topic"
	GrammarQuiz  ModuleKey = "grammar_quiz"
)

type Item struct {
	Index int    `json:"id"`
	Text  string `json:"text"`
}

type QuizItem struct {
	Index    int    `json:"id"`
	Prompt   string `json:"sentence"`
	Answer   string `json:"answer"`
	Category string `json:"category"`
}

// Module is one exercise type with its content table.
type Module struct {
	Key      ModuleKey
	Name     string
	Strategy Strategy
	// HasAudio marks modules whose items are played back to the learner.
	HasAudio bool

	items []string
	quiz  []QuizItem
}

// Size is the number of addressable items.
func (m *Module) Size() int {
	if m.Strategy == StrategyMatch {
		return len(m.quiz)
	}
	return len(m.items)
}

// Item returns the text item at index.
func (m *Module) Item(index int) (Item, error) {
	if index < 0 || index >= m.Size() {
		return Item{}, fmt.Errorf("%w: %s item %d", ErrNotFound, m.Key, index)
	}
	if m.Strategy == StrategyMatch {
		return Item{Index: index, Text: m.quiz[index].Prompt}, nil
	}
	return Item{Index: index, Text: m.items[index]}, nil
}

// QuizItem returns the quiz item at index. Only valid for matching modules.
func (m *Module) QuizItem(index int) (QuizItem, error) {
	if m.Strategy != StrategyMatch || index < 0 || index >= len(m.quiz) {
		return QuizItem{}, fmt.Errorf("%w: %s quiz item %d", ErrNotFound, m.Key, index)
	}
	return m.quiz[index], nil
}

var (
	modules = []*Module{
		{Key: ReadAloud, Name: "Module A - Read & Speak", Strategy: StrategyRubric, items: readAloudSentences},
		{Key: ListenRepeat, Name: "Module B - Listen & Repeat", Strategy: StrategyRubric, HasAudio: true, items: listenRepeatSentences},
		{Key: Topic, Name: "Module C - Topic Speaking", Strategy: StrategyRubric, items: speakingTopics},
		{Key: GrammarQuiz, Name: "Module D - Grammar Quiz", Strategy: StrategyMatch, quiz: grammarQuestions},
	}

	byKey = func() map[ModuleKey]*Module {
		m := make(map[ModuleKey]*Module, len(modules))
		for _, mod := range modules {
			m[mod.Key] = mod
		}
		return m
	}()
)

// Lookup finds a module by key.
func Lookup(key string) (*Module, error) {
	m, ok := byKey[ModuleKey(key)]
	if !ok {
		return nil, fmt.Errorf("%w: module %q", ErrNotFound, key)
	}
	return m, nil
}

// MustLookup is Lookup for keys known at compile time.
func MustLookup(key ModuleKey) *Module {
	m, err := Lookup(string(key))
	if err != nil {
		panic(err)
	}
	return m
}

// All returns every module in display order.
func All() []*Module {
	out := make([]*Module, len(modules))
	copy(out, modules)
	return out
}

// Rank gives the display position of a module key, or -1 when unknown.
func Rank(key string) int {
	for i, m := range modules {
		if string(m.Key) == key {
			return i
		}
	}
	return -1
}

// DisplayName returns the human readable module name, or the key itself.
func DisplayName(key string) string {
	if m, ok := byKey[ModuleKey(key)]; ok {
		return m.Name
	}
	return key
}
