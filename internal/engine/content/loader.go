package content

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"go.uber.org/multierr"

	"github.com/dreamtides/battlecore/internal/engine/identifiers"
	"github.com/dreamtides/battlecore/internal/engine/parser"
)

// cardRow is the array-of-tables shape of one row in cards.toml, per §6.2:
// snake-case fields, integer cost values preserved literally.
type cardRow struct {
	ID          string `toml:"id"`
	Name        string `toml:"name"`
	CardType    string `toml:"card-type"`
	Subtype     string `toml:"subtype"`
	Rarity      string `toml:"rarity"`
	Spark       *int   `toml:"spark"`
	EnergyCost  *int   `toml:"energy-cost"`
	IsFast      bool   `toml:"is-fast"`
	ImageNumber int    `toml:"image-number"`
	RulesText   string `toml:"rules-text"`
	Variables   string `toml:"variables"`
}

type cardTable struct {
	Card []cardRow `toml:"card"`
}

type dreamwellRow struct {
	cardRow
	EnergyProduced int `toml:"energy-produced"`
	Phase          int `toml:"phase"`
}

type dreamwellTable struct {
	Card []dreamwellRow `toml:"card"`
}

type cardListRow struct {
	Name  string   `toml:"name"`
	Cards []string `toml:"cards"`
}

type cardListTable struct {
	List []cardListRow `toml:"list"`
}

// Tabula is the full set of immutable content loaded at startup, shared by
// reference across every battle (§5 "content-table data... is immutable
// and shared via reference counting").
type Tabula struct {
	Cards      map[identifiers.BaseCardId]*CardDefinition
	Dreamwell  map[identifiers.BaseCardId]*DreamwellCardDefinition
	DreamwellOrder []identifiers.BaseCardId
	CardLists  map[string]CardList
}

// LoadCards parses one cards.toml file. Every row error is collected and
// returned together via multierr.Combine; per §7 "no partial load", a
// non-nil error means zero cards from this file are usable.
func LoadCards(path string) (map[identifiers.BaseCardId]*CardDefinition, error) {
	var table cardTable
	meta, err := toml.DecodeFile(path, &table)
	if err != nil {
		return nil, fmt.Errorf("content: parsing %s: %w", path, err)
	}

	var errs []error
	out := make(map[identifiers.BaseCardId]*CardDefinition, len(table.Card))
	for i, row := range table.Card {
		def, err := compileCardRow(path, i, row)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		out[def.BaseID] = def
	}
	errs = append(errs, undecodedKeyErrors(path, meta)...)
	if combined := multierr.Combine(errs...); combined != nil {
		return nil, fmt.Errorf("content: %d error(s) loading %s: %w", len(errs), path, combined)
	}
	return out, nil
}

// undecodedKeyErrors reports every TOML key meta saw in the source file but
// that never landed in a struct field, e.g. a typo'd column name like
// "eneryg-cost": these would otherwise be silently dropped (§7 "content
// errors ... batched per file").
func undecodedKeyErrors(path string, meta toml.MetaData) []error {
	undecoded := meta.Undecoded()
	errs := make([]error, len(undecoded))
	for i, key := range undecoded {
		errs[i] = fmt.Errorf("%s: undecoded field %q", path, key.String())
	}
	return errs
}

// LoadDreamwell parses one dreamwell.toml file.
func LoadDreamwell(path string) (map[identifiers.BaseCardId]*DreamwellCardDefinition, []identifiers.BaseCardId, error) {
	var table dreamwellTable
	meta, err := toml.DecodeFile(path, &table)
	if err != nil {
		return nil, nil, fmt.Errorf("content: parsing %s: %w", path, err)
	}

	var errs []error
	out := make(map[identifiers.BaseCardId]*DreamwellCardDefinition, len(table.Card))
	var order []identifiers.BaseCardId
	for i, row := range table.Card {
		def, err := compileCardRow(path, i, row.cardRow)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		dw := &DreamwellCardDefinition{
			CardDefinition: *def,
			EnergyProduced: identifiers.Energy(row.EnergyProduced),
			PhaseIndex:     row.Phase,
		}
		out[dw.BaseID] = dw
		order = append(order, dw.BaseID)
	}
	errs = append(errs, undecodedKeyErrors(path, meta)...)
	if combined := multierr.Combine(errs...); combined != nil {
		return nil, nil, fmt.Errorf("content: %d error(s) loading %s: %w", len(errs), path, combined)
	}
	return out, order, nil
}

// LoadCardLists parses the SPEC_FULL-supplemented card_lists.toml table
// (named, reusable BaseCardId lists such as a starter deck).
func LoadCardLists(path string) (map[string]CardList, error) {
	if _, statErr := os.Stat(path); statErr != nil {
		return map[string]CardList{}, nil
	}

	var table cardListTable
	if _, err := toml.DecodeFile(path, &table); err != nil {
		return nil, fmt.Errorf("content: parsing %s: %w", path, err)
	}

	out := make(map[string]CardList, len(table.List))
	for _, row := range table.List {
		ids := make([]identifiers.BaseCardId, len(row.Cards))
		for i, c := range row.Cards {
			ids[i] = identifiers.BaseCardId(c)
		}
		out[row.Name] = CardList{Name: row.Name, Cards: ids}
	}
	return out, nil
}

// LoadTabula assembles a full Tabula from the three content tables the
// engine server needs at startup, stopping at the first table that fails
// to load rather than returning a partially-populated Tabula.
func LoadTabula(cardsPath, dreamwellPath, cardListsPath string) (*Tabula, error) {
	cards, err := LoadCards(cardsPath)
	if err != nil {
		return nil, err
	}
	dreamwell, order, err := LoadDreamwell(dreamwellPath)
	if err != nil {
		return nil, err
	}
	cardLists, err := LoadCardLists(cardListsPath)
	if err != nil {
		return nil, err
	}
	return &Tabula{
		Cards:          cards,
		Dreamwell:      dreamwell,
		DreamwellOrder: order,
		CardLists:      cardLists,
	}, nil
}

func compileCardRow(path string, index int, row cardRow) (*CardDefinition, error) {
	if row.ID == "" {
		return nil, fmt.Errorf("%s: row %d: missing required field %q", path, index, "id")
	}
	if row.Name == "" {
		return nil, fmt.Errorf("%s: row %d (%s): missing required field %q", path, index, row.ID, "name")
	}
	cardType, err := parseCardType(row.CardType)
	if err != nil {
		return nil, fmt.Errorf("%s: row %d (%s): %w", path, index, row.ID, err)
	}
	rarity, err := parseRarity(row.Rarity)
	if err != nil {
		return nil, fmt.Errorf("%s: row %d (%s): %w", path, index, row.ID, err)
	}
	if row.ImageNumber == 0 {
		return nil, fmt.Errorf("%s: row %d (%s): missing required field %q", path, index, row.ID, "image-number")
	}

	def := &CardDefinition{
		BaseID:      identifiers.BaseCardId(row.ID),
		Name:        row.Name,
		CardType:    cardType,
		Subtype:     row.Subtype,
		IsFast:      row.IsFast,
		Rarity:      rarity,
		ImageNumber: row.ImageNumber,
		RulesText:   row.RulesText,
	}
	if row.Spark != nil {
		spark := identifiers.Spark(*row.Spark)
		def.Spark = &spark
	}
	if row.EnergyCost != nil {
		cost := identifiers.Energy(*row.EnergyCost)
		def.EnergyCost = &cost
	}

	if err := def.Validate(); err != nil {
		return nil, fmt.Errorf("%s: row %d (%s): %w", path, index, row.ID, err)
	}

	bindings, err := parser.ParseBindings(row.Variables)
	if err != nil {
		return nil, fmt.Errorf("%s: row %d (%s): invalid variable bindings: %w", path, index, row.ID, err)
	}
	abilities, err := parser.Compile(row.RulesText, bindings)
	if err != nil {
		return nil, fmt.Errorf("%s: row %d (%s): %w", path, index, row.ID, err)
	}
	def.Abilities = abilities

	return def, nil
}

func parseCardType(s string) (CardType, error) {
	switch s {
	case "character":
		return CardTypeCharacter, nil
	case "event":
		return CardTypeEvent, nil
	case "dream":
		return CardTypeDream, nil
	default:
		return 0, fmt.Errorf("invalid card-type %q", s)
	}
}

func parseRarity(s string) (Rarity, error) {
	switch s {
	case "", "common":
		return RarityCommon, nil
	case "uncommon":
		return RarityUncommon, nil
	case "rare":
		return RarityRare, nil
	case "enigma":
		return RarityEnigma, nil
	default:
		return 0, fmt.Errorf("invalid rarity %q", s)
	}
}
