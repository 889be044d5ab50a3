package convert

import (
	"github.com/agentic-research/grimoire/api"
	"github.com/agentic-research/grimoire/internal/transform"
)

// Ability is one ability score.
type Ability struct {
	Value      int `json:"value"`
	Mod        int `json:"mod"`
	Proficient int `json:"proficient"`
}

// Skill is a skill proficiency: 0 none, 1 proficient, 2 expertise.
type Skill struct {
	Value   int    `json:"value"`
	Ability string `json:"ability"`
}

// Trait is a set of canonical codes.
type Trait struct {
	Value  []string `json:"value"`
	Custom string   `json:"custom"`
}

type ArmorClass struct {
	Flat int    `json:"flat"`
	Calc string `json:"calc"`
}

type HitPoints struct {
	Value   int    `json:"value"`
	Max     int    `json:"max"`
	Formula string `json:"formula"`
}

type SensesBlock struct {
	Darkvision  int    `json:"darkvision"`
	Blindsight  int    `json:"blindsight"`
	Tremorsense int    `json:"tremorsense"`
	Truesight   int    `json:"truesight"`
	Units       string `json:"units"`
	Special     string `json:"special"`
}

type CreatureAttributes struct {
	AC       ArmorClass         `json:"ac"`
	HP       HitPoints          `json:"hp"`
	Movement transform.Movement `json:"movement"`
	Senses   SensesBlock        `json:"senses"`
}

type CreatureType struct {
	Value   string `json:"value"`
	Subtype string `json:"subtype"`
	Swarm   string `json:"swarm"`
	Custom  string `json:"custom"`
}

type XP struct {
	Value int `json:"value"`
}

type CreatureDetails struct {
	Biography api.Description `json:"biography"`
	Type      CreatureType    `json:"type"`
	Alignment string          `json:"alignment"`
	CR        float64         `json:"cr"`
	XP        XP              `json:"xp"`
}

type CreatureTraits struct {
	Size      string `json:"size"`
	DI        Trait  `json:"di"`
	DR        Trait  `json:"dr"`
	DV        Trait  `json:"dv"`
	CI        Trait  `json:"ci"`
	Languages Trait  `json:"languages"`
}

// CreatureSystem is the payload of npc and character actors.
type CreatureSystem struct {
	Abilities  map[string]Ability `json:"abilities"`
	Attributes CreatureAttributes `json:"attributes"`
	Details    CreatureDetails    `json:"details"`
	Traits     CreatureTraits     `json:"traits"`
	Skills     map[string]Skill   `json:"skills"`
	Source     api.Source         `json:"source"`
}

// Damage is a list of damage parts plus an optional versatile formula.
type Damage struct {
	Parts     []transform.DamagePart `json:"parts"`
	Versatile string                 `json:"versatile"`
}

// SaveBlock is a saving throw requirement. Scaling "flat" uses DC as stated,
// "spell" uses the caster's spell save DC.
type SaveBlock struct {
	Ability string `json:"ability"`
	DC      *int   `json:"dc"`
	Scaling string `json:"scaling"`
}

// ActionSystem is the payload of an actor's embedded trait or action.
type ActionSystem struct {
	Description api.Description      `json:"description"`
	Activation  transform.Activation `json:"activation"`
	Uses        *transform.Uses      `json:"uses,omitempty"`
	ActionType  string               `json:"actionType"`
	AttackBonus string               `json:"attackBonus"`
	Damage      Damage               `json:"damage"`
	Range       transform.Range      `json:"range"`
	Save        *SaveBlock           `json:"save,omitempty"`
	WeaponType  string               `json:"weaponType,omitempty"`
	Type        *ItemSubtype         `json:"type,omitempty"`
}

// ItemSubtype qualifies an item's document type ("monster", "class", ...).
type ItemSubtype struct {
	Value   string `json:"value"`
	Subtype string `json:"subtype"`
}

// PhysicalItem holds the fields shared by every carried item.
type PhysicalItem struct {
	Description api.Description  `json:"description"`
	Source      api.Source       `json:"source"`
	Quantity    int              `json:"quantity"`
	Weight      float64          `json:"weight"`
	Price       *transform.Price `json:"price"`
	Rarity      string           `json:"rarity"`
	Identifier  string           `json:"identifier"`
}

// WeaponSystem is the payload of weapon items.
type WeaponSystem struct {
	PhysicalItem
	WeaponType  string               `json:"weaponType"`
	Properties  map[string]bool      `json:"properties"`
	ActionType  string               `json:"actionType"`
	AttackBonus string               `json:"attackBonus"`
	Damage      Damage               `json:"damage"`
	Range       transform.Range      `json:"range"`
	Activation  transform.Activation `json:"activation"`
}

type ArmorValue struct {
	Value int    `json:"value"`
	Type  string `json:"type"`
	// Dex caps the dexterity bonus. Nil means uncapped.
	Dex *int `json:"dex"`
}

// ArmorSystem is the payload of armor and shields.
type ArmorSystem struct {
	PhysicalItem
	Armor    ArmorValue `json:"armor"`
	Strength int        `json:"strength"`
	Stealth  bool       `json:"stealth"`
}

type Materials struct {
	Value    string  `json:"value"`
	Consumed bool    `json:"consumed"`
	Cost     float64 `json:"cost"`
}

type Scaling struct {
	Mode    string `json:"mode"`
	Formula string `json:"formula"`
}

type Preparation struct {
	Mode     string `json:"mode"`
	Prepared bool   `json:"prepared"`
}

// SpellSystem is the payload of spells.
type SpellSystem struct {
	Description api.Description      `json:"description"`
	Source      api.Source           `json:"source"`
	Level       int                  `json:"level"`
	School      string               `json:"school"`
	Components  transform.Components `json:"components"`
	Materials   Materials            `json:"materials"`
	Activation  transform.Activation `json:"activation"`
	Duration    transform.Duration   `json:"duration"`
	Range       transform.SpellRange `json:"range"`
	Target      transform.Target     `json:"target"`
	ActionType  string               `json:"actionType"`
	Damage      Damage               `json:"damage"`
	Save        *SaveBlock           `json:"save,omitempty"`
	Scaling     Scaling              `json:"scaling"`
	Preparation Preparation          `json:"preparation"`
	Classes     []string             `json:"classes"`
	Identifier  string               `json:"identifier"`
}

// ItemSystem is the payload of every other item type. Fields that only some
// types carry are omitted when empty.
type ItemSystem struct {
	Description     api.Description       `json:"description"`
	Source          api.Source            `json:"source"`
	Identifier      string                `json:"identifier"`
	Quantity        int                   `json:"quantity,omitempty"`
	Weight          float64               `json:"weight,omitempty"`
	Price           *transform.Price      `json:"price,omitempty"`
	Rarity          string                `json:"rarity,omitempty"`
	Type            *ItemSubtype          `json:"type,omitempty"`
	Requirements    string                `json:"requirements,omitempty"`
	Activation      *transform.Activation `json:"activation,omitempty"`
	Uses            *transform.Uses       `json:"uses,omitempty"`
	Damage          *Damage               `json:"damage,omitempty"`
	Skills          []string              `json:"skills,omitempty"`
	Tools           string                `json:"tools,omitempty"`
	HitDice         string                `json:"hitDice,omitempty"`
	Levels          int                   `json:"levels,omitempty"`
	Saves           []string              `json:"saves,omitempty"`
	Spellcasting    string                `json:"spellcasting,omitempty"`
	ClassIdentifier string                `json:"classIdentifier,omitempty"`
	Size            string                `json:"size,omitempty"`
	Movement        *transform.Movement   `json:"movement,omitempty"`
	Darkvision      int                   `json:"darkvision,omitempty"`
}

// JournalSystem is the payload of journal entries.
type JournalSystem struct {
	Category string     `json:"category"`
	Source   api.Source `json:"source"`
}

type PageText struct {
	Content string `json:"content"`
	Format  int    `json:"format"`
}

// PageSystem is the payload of a journal text page.
type PageSystem struct {
	Text PageText `json:"text"`
}

// TableSystem is the payload of roll tables.
type TableSystem struct {
	Description string `json:"description"`
	Formula     string `json:"formula"`
	Replacement bool   `json:"replacement"`
	DisplayRoll bool   `json:"displayRoll"`
}

// ResultSystem is the payload of one roll table result.
type ResultSystem struct {
	Text   string `json:"text"`
	Range  [2]int `json:"range"`
	Weight int    `json:"weight"`
	Drawn  bool   `json:"drawn"`
}
