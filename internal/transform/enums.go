package transform

// Canonical enumerations. Codes follow the target platform's vocabulary.

var Sizes = NewEnum("size", "med",
	Entry{"tiny", "Tiny", []string{"diminuto", "diminuta", "diminutos", "diminutas", "minusculo", "minuscula"}},
	Entry{"sm", "Small", []string{"pequeno", "pequena", "pequenos", "pequenas", "small"}},
	Entry{"med", "Medium", []string{"mediano", "mediana", "medium"}},
	Entry{"lg", "Large", []string{"grande", "large"}},
	Entry{"huge", "Huge", []string{"enorme"}},
	Entry{"grg", "Gargantuan", []string{"gargantuesco", "gargantuesca", "colosal"}},
)

var CreatureTypes = NewEnum("creature type", "custom",
	Entry{"aberration", "Aberration", []string{"aberracion", "aberrations"}},
	Entry{"beast", "Beast", []string{"bestia", "beasts", "bestias"}},
	Entry{"celestial", "Celestial", []string{"celestials", "celestiales"}},
	Entry{"construct", "Construct", []string{"constructo", "constructs", "constructos"}},
	Entry{"dragon", "Dragon", []string{"dragones", "dragons"}},
	Entry{"elemental", "Elemental", []string{"elementals", "elementales"}},
	Entry{"fey", "Fey", []string{"feerico", "feerica", "hada", "feericos"}},
	Entry{"fiend", "Fiend", []string{"infernal", "demonio", "diablo", "fiends", "infernales"}},
	Entry{"giant", "Giant", []string{"gigante", "giants", "gigantes"}},
	Entry{"humanoid", "Humanoid", []string{"humanoide", "humanoids", "humanoides"}},
	Entry{"monstrosity", "Monstrosity", []string{"monstruosidad", "monstrosities", "monstruosidades"}},
	Entry{"ooze", "Ooze", []string{"cieno", "oozes", "cienos"}},
	Entry{"plant", "Plant", []string{"planta", "plants", "plantas"}},
	Entry{"undead", "Undead", []string{"muerto viviente", "no muerto", "muertos vivientes"}},
)

var ArmorCategories = NewEnum("armor category", "custom",
	Entry{"light", "Light Armor", []string{"light", "ligera", "armadura ligera"}},
	Entry{"medium", "Medium Armor", []string{"medium", "intermedia", "media", "armadura intermedia", "armadura media"}},
	Entry{"heavy", "Heavy Armor", []string{"heavy", "pesada", "armadura pesada"}},
	Entry{"shield", "Shield", []string{"shields", "escudo", "escudos"}},
	Entry{"natural", "Natural Armor", []string{"natural", "armadura natural"}},
)

var Abilities = NewEnum("ability", "",
	Entry{"str", "Strength", []string{"fuerza", "fue"}},
	Entry{"dex", "Dexterity", []string{"destreza", "des"}},
	Entry{"con", "Constitution", []string{"constitucion"}},
	Entry{"int", "Intelligence", []string{"inteligencia"}},
	Entry{"wis", "Wisdom", []string{"sabiduria", "sab"}},
	Entry{"cha", "Charisma", []string{"carisma", "car"}},
)

var Skills = NewEnum("skill", "",
	Entry{"acr", "Acrobatics", []string{"acrobacias"}},
	Entry{"ani", "Animal Handling", []string{"trato con animales", "animal"}},
	Entry{"arc", "Arcana", []string{"conocimiento arcano", "arcanos"}},
	Entry{"ath", "Athletics", []string{"atletismo"}},
	Entry{"dec", "Deception", []string{"engano"}},
	Entry{"his", "History", []string{"historia"}},
	Entry{"ins", "Insight", []string{"perspicacia"}},
	Entry{"itm", "Intimidation", []string{"intimidacion"}},
	Entry{"inv", "Investigation", []string{"investigacion"}},
	Entry{"med", "Medicine", []string{"medicina"}},
	Entry{"nat", "Nature", []string{"naturaleza"}},
	Entry{"prc", "Perception", []string{"percepcion"}},
	Entry{"prf", "Performance", []string{"interpretacion"}},
	Entry{"per", "Persuasion", []string{"persuasion"}},
	Entry{"rel", "Religion", []string{"religion"}},
	Entry{"slt", "Sleight of Hand", []string{"juego de manos"}},
	Entry{"ste", "Stealth", []string{"sigilo"}},
	Entry{"sur", "Survival", []string{"supervivencia"}},
)

// SkillAbility is the ability each skill keys off.
var SkillAbility = map[string]string{
	"acr": "dex", "ani": "wis", "arc": "int", "ath": "str", "dec": "cha", "his": "int",
	"ins": "wis", "itm": "cha", "inv": "int", "med": "wis", "nat": "int", "prc": "wis",
	"prf": "cha", "per": "cha", "rel": "int", "slt": "dex", "ste": "dex", "sur": "wis",
}

var Languages = NewEnum("language", "",
	Entry{"common", "Common", []string{"comun"}},
	Entry{"dwarvish", "Dwarvish", []string{"enano", "dwarven"}},
	Entry{"elvish", "Elvish", []string{"elfico", "elven"}},
	Entry{"giant", "Giant", []string{"gigante"}},
	Entry{"gnomish", "Gnomish", []string{"gnomo", "gnomico"}},
	Entry{"goblin", "Goblin", nil},
	Entry{"halfling", "Halfling", []string{"mediano"}},
	Entry{"orc", "Orc", []string{"orco", "orcish"}},
	Entry{"abyssal", "Abyssal", []string{"abisal"}},
	Entry{"celestial", "Celestial", nil},
	Entry{"draconic", "Draconic", []string{"draconico", "dracónico"}},
	Entry{"deep", "Deep Speech", []string{"habla profunda", "deep speech"}},
	Entry{"infernal", "Infernal", nil},
	Entry{"primordial", "Primordial", []string{"aquan", "auran", "ignan", "terran"}},
	Entry{"sylvan", "Sylvan", []string{"silvano"}},
	Entry{"undercommon", "Undercommon", []string{"infracomun"}},
	Entry{"druidic", "Druidic", []string{"druidico"}},
	Entry{"cant", "Thieves' Cant", []string{"jerga de ladrones", "thieves cant"}},
)

var Conditions = NewEnum("condition", "",
	Entry{"blinded", "Blinded", []string{"cegado", "ciego", "blindness"}},
	Entry{"charmed", "Charmed", []string{"hechizado", "encantado"}},
	Entry{"deafened", "Deafened", []string{"ensordecido", "sordo"}},
	Entry{"diseased", "Diseased", []string{"enfermo", "disease"}},
	Entry{"exhaustion", "Exhaustion", []string{"agotamiento", "cansancio"}},
	Entry{"frightened", "Frightened", []string{"asustado", "aterrorizado"}},
	Entry{"grappled", "Grappled", []string{"agarrado", "apresado"}},
	Entry{"incapacitated", "Incapacitated", []string{"incapacitado"}},
	Entry{"invisible", "Invisible", nil},
	Entry{"paralyzed", "Paralyzed", []string{"paralizado"}},
	Entry{"petrified", "Petrified", []string{"petrificado"}},
	Entry{"poisoned", "Poisoned", []string{"envenenado"}},
	Entry{"prone", "Prone", []string{"derribado", "tumbado"}},
	Entry{"restrained", "Restrained", []string{"neutralizado", "restringido"}},
	Entry{"stunned", "Stunned", []string{"aturdido"}},
	Entry{"unconscious", "Unconscious", []string{"inconsciente"}},
)

var DamageTypes = NewEnum("damage type", "",
	Entry{"acid", "Acid", []string{"acido"}},
	Entry{"bludgeoning", "Bludgeoning", []string{"contundente", "contundentes"}},
	Entry{"cold", "Cold", []string{"frio"}},
	Entry{"fire", "Fire", []string{"fuego"}},
	Entry{"force", "Force", []string{"fuerza magica", "energia"}},
	Entry{"lightning", "Lightning", []string{"relampago", "electricidad", "rayo"}},
	Entry{"necrotic", "Necrotic", []string{"necrotico"}},
	Entry{"piercing", "Piercing", []string{"perforante", "perforantes"}},
	Entry{"poison", "Poison", []string{"veneno"}},
	Entry{"psychic", "Psychic", []string{"psiquico"}},
	Entry{"radiant", "Radiant", []string{"radiante"}},
	Entry{"slashing", "Slashing", []string{"cortante", "cortantes"}},
	Entry{"thunder", "Thunder", []string{"trueno"}},
)

var Schools = NewEnum("school", "",
	Entry{"abj", "Abjuration", []string{"abjuracion"}},
	Entry{"con", "Conjuration", []string{"conjuracion"}},
	Entry{"div", "Divination", []string{"adivinacion"}},
	Entry{"enc", "Enchantment", []string{"encantamiento"}},
	Entry{"evo", "Evocation", []string{"evocacion"}},
	Entry{"ill", "Illusion", []string{"ilusion"}},
	Entry{"nec", "Necromancy", []string{"nigromancia"}},
	Entry{"trs", "Transmutation", []string{"transmutacion"}},
)

var ActivationTypes = NewEnum("activation", "special",
	Entry{"action", "Action", []string{"actions", "accion", "acciones"}},
	Entry{"bonus", "Bonus Action", []string{"bonus action", "accion adicional", "accion bonus"}},
	Entry{"reaction", "Reaction", []string{"reacción", "reaccion"}},
	Entry{"minute", "Minute", []string{"minutes", "minuto", "minutos", "min"}},
	Entry{"hour", "Hour", []string{"hours", "hora", "horas"}},
	Entry{"day", "Day", []string{"days", "dia", "dias"}},
	Entry{"legendary", "Legendary Action", []string{"legendary action", "accion legendaria"}},
	Entry{"special", "Special", []string{"especial"}},
)

var DurationUnits = NewEnum("duration unit", "spec",
	Entry{"inst", "Instantaneous", []string{"instantaneous", "instantanea", "instantaneo"}},
	Entry{"turn", "Turns", []string{"turn", "turns", "turno", "turnos"}},
	Entry{"round", "Rounds", []string{"round", "rounds", "asalto", "asaltos", "ronda", "rondas"}},
	Entry{"minute", "Minutes", []string{"minute", "minutes", "minuto", "minutos"}},
	Entry{"hour", "Hours", []string{"hour", "hours", "hora", "horas"}},
	Entry{"day", "Days", []string{"day", "days", "dia", "dias"}},
	Entry{"month", "Months", []string{"month", "months", "mes", "meses"}},
	Entry{"year", "Years", []string{"year", "years", "ano", "anos"}},
	Entry{"perm", "Permanent", []string{"permanent", "permanente", "until dispelled", "hasta que se disipe"}},
	Entry{"spec", "Special", []string{"special", "especial"}},
)

var RangeUnits = NewEnum("range unit", "spec",
	Entry{"self", "Self", []string{"personal", "uno mismo", "lanzador"}},
	Entry{"touch", "Touch", []string{"toque"}},
	Entry{"ft", "Feet", []string{"feet", "foot", "pies", "pie"}},
	Entry{"mi", "Miles", []string{"mile", "miles", "milla", "millas"}},
	Entry{"spec", "Special", []string{"special", "especial"}},
	Entry{"any", "Unlimited", []string{"unlimited", "ilimitado", "ilimitada"}},
	Entry{"sight", "Sight", []string{"vista", "a la vista"}},
)

var AreaShapes = NewEnum("area", "",
	Entry{"cone", "Cone", []string{"cono"}},
	Entry{"cube", "Cube", []string{"cubo"}},
	Entry{"cylinder", "Cylinder", []string{"cilindro"}},
	Entry{"line", "Line", []string{"linea"}},
	Entry{"radius", "Radius", []string{"radio"}},
	Entry{"sphere", "Sphere", []string{"esfera"}},
	Entry{"square", "Square", []string{"cuadrado"}},
	Entry{"wall", "Wall", []string{"muro", "pared"}},
)

var WeaponProperties = NewEnum("weapon property", "",
	Entry{"amm", "Ammunition", []string{"municion"}},
	Entry{"fin", "Finesse", []string{"sutil"}},
	Entry{"hvy", "Heavy", []string{"pesada", "pesado"}},
	Entry{"lgt", "Light", []string{"ligera", "ligero"}},
	Entry{"lod", "Loading", []string{"recarga", "carga"}},
	Entry{"rch", "Reach", []string{"alcance", "gran alcance"}},
	Entry{"spc", "Special", []string{"especial"}},
	Entry{"thr", "Thrown", []string{"arrojadiza", "arrojadizo", "lanzable"}},
	Entry{"two", "Two-Handed", []string{"two handed", "a dos manos", "dos manos"}},
	Entry{"ver", "Versatile", []string{"versatil"}},
	Entry{"mgc", "Magical", []string{"magica", "magico", "magic"}},
	Entry{"sil", "Silvered", []string{"plateada", "plateado"}},
)

var Currencies = NewEnum("currency", "gp",
	Entry{"pp", "Platinum", []string{"platinum", "ppt", "platino", "pt"}},
	Entry{"gp", "Gold", []string{"gold", "po", "oro", "mo"}},
	Entry{"ep", "Electrum", []string{"electrum", "pe", "electro"}},
	Entry{"sp", "Silver", []string{"silver", "plata", "mp"}},
	Entry{"cp", "Copper", []string{"copper", "pc", "cobre", "mc"}},
)

var ConsumableTypes = NewEnum("consumable", "trinket",
	Entry{"potion", "Potion", []string{"potions", "pocion", "pociones", "elixir"}},
	Entry{"poison", "Poison", []string{"veneno", "venenos"}},
	Entry{"scroll", "Scroll", []string{"scrolls", "pergamino", "pergaminos"}},
	Entry{"ammo", "Ammunition", []string{"ammunition", "municion", "arrows", "flechas", "virotes"}},
	Entry{"wand", "Wand", []string{"wands", "varita", "varitas"}},
	Entry{"rod", "Rod", []string{"rods", "vara", "varas"}},
	Entry{"food", "Food", []string{"comida", "rations", "raciones"}},
	Entry{"trinket", "Trinket", []string{"baratija", "chucheria"}},
)

var Rarities = NewEnum("rarity", "",
	Entry{"common", "Common", []string{"comun"}},
	Entry{"uncommon", "Uncommon", []string{"poco comun", "infrecuente"}},
	Entry{"rare", "Rare", []string{"raro", "rara"}},
	Entry{"veryRare", "Very Rare", []string{"very rare", "muy raro", "muy rara"}},
	Entry{"legendary", "Legendary", []string{"legendario", "legendaria"}},
	Entry{"artifact", "Artifact", []string{"artefacto"}},
)

var Senses = NewEnum("sense", "",
	Entry{"darkvision", "Darkvision", []string{"vision en la oscuridad", "vision oscura"}},
	Entry{"blindsight", "Blindsight", []string{"vista ciega", "vision ciega"}},
	Entry{"tremorsense", "Tremorsense", []string{"sentir vibraciones", "sentido de la vibracion", "sentido sismico"}},
	Entry{"truesight", "Truesight", []string{"vision verdadera"}},
)
