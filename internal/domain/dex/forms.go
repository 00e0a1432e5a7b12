package dex

// alternateForms maps alternate-form ids (PokeAPI numbering) to the base
// species they belong to. Values are always below AlternateFormThreshold so
// Normalize is idempotent.
var alternateForms = map[int]int{
	// Sinnoh and Unova forms
	10001: 386, // deoxys-attack
	10002: 386, // deoxys-defense
	10003: 386, // deoxys-speed
	10004: 413, // wormadam-sandy
	10005: 413, // wormadam-trash
	10006: 492, // shaymin-sky
	10007: 487, // giratina-origin
	10008: 479, // rotom-heat
	10009: 479, // rotom-wash
	10010: 479, // rotom-frost
	10011: 479, // rotom-fan
	10012: 479, // rotom-mow
	10013: 351, // castform-sunny
	10014: 351, // castform-rainy
	10015: 351, // castform-snowy
	10016: 550, // basculin-blue-striped
	10017: 555, // darmanitan-zen
	10018: 648, // meloetta-pirouette
	10019: 641, // tornadus-therian
	10020: 642, // thundurus-therian
	10021: 645, // landorus-therian
	10022: 646, // kyurem-black
	10023: 646, // kyurem-white
	10024: 647, // keldeo-resolute
	10025: 678, // meowstic-female
	10026: 681, // aegislash-blade
	10027: 710, // pumpkaboo-small
	10028: 710, // pumpkaboo-large
	10029: 710, // pumpkaboo-super
	10030: 711, // gourgeist-small
	10031: 711, // gourgeist-large
	10032: 711, // gourgeist-super

	// Mega evolutions and primal reversions
	10033: 3,   // venusaur-mega
	10034: 6,   // charizard-mega-x
	10035: 6,   // charizard-mega-y
	10036: 9,   // blastoise-mega
	10037: 65,  // alakazam-mega
	10038: 94,  // gengar-mega
	10039: 115, // kangaskhan-mega
	10040: 127, // pinsir-mega
	10041: 130, // gyarados-mega
	10042: 142, // aerodactyl-mega
	10043: 150, // mewtwo-mega-x
	10044: 150, // mewtwo-mega-y
	10045: 181, // ampharos-mega
	10046: 212, // scizor-mega
	10047: 214, // heracross-mega
	10048: 229, // houndoom-mega
	10049: 248, // tyranitar-mega
	10050: 257, // blaziken-mega
	10051: 282, // gardevoir-mega
	10052: 303, // mawile-mega
	10053: 306, // aggron-mega
	10054: 308, // medicham-mega
	10055: 310, // manectric-mega
	10056: 354, // banette-mega
	10057: 359, // absol-mega
	10058: 445, // garchomp-mega
	10059: 448, // lucario-mega
	10060: 460, // abomasnow-mega
	10062: 380, // latias-mega
	10063: 381, // latios-mega
	10064: 260, // swampert-mega
	10065: 254, // sceptile-mega
	10066: 302, // sableye-mega
	10067: 334, // altaria-mega
	10068: 475, // gallade-mega
	10069: 531, // audino-mega
	10070: 319, // sharpedo-mega
	10071: 80,  // slowbro-mega
	10072: 208, // steelix-mega
	10073: 18,  // pidgeot-mega
	10074: 362, // glalie-mega
	10075: 719, // diancie-mega
	10076: 376, // metagross-mega
	10077: 382, // kyogre-primal
	10078: 383, // groudon-primal
	10079: 384, // rayquaza-mega
	10087: 323, // camerupt-mega
	10088: 428, // lopunny-mega
	10089: 373, // salamence-mega
	10090: 15,  // beedrill-mega

	// Alolan forms
	10091: 19,  // rattata-alola
	10092: 20,  // raticate-alola
	10100: 26,  // raichu-alola
	10101: 27,  // sandshrew-alola
	10102: 28,  // sandslash-alola
	10103: 37,  // vulpix-alola
	10104: 38,  // ninetales-alola
	10105: 50,  // diglett-alola
	10106: 51,  // dugtrio-alola
	10107: 52,  // meowth-alola
	10108: 53,  // persian-alola
	10109: 74,  // geodude-alola
	10110: 75,  // graveler-alola
	10111: 76,  // golem-alola
	10112: 88,  // grimer-alola
	10113: 89,  // muk-alola
	10114: 103, // exeggutor-alola
	10115: 105, // marowak-alola

	// Gigantamax forms
	10195: 3,   // venusaur-gmax
	10196: 6,   // charizard-gmax
	10197: 9,   // blastoise-gmax
	10198: 12,  // butterfree-gmax
	10199: 25,  // pikachu-gmax
	10200: 52,  // meowth-gmax
	10201: 68,  // machamp-gmax
	10202: 94,  // gengar-gmax
	10203: 99,  // kingler-gmax
	10204: 131, // lapras-gmax
	10205: 133, // eevee-gmax
	10206: 143, // snorlax-gmax

	// Galarian forms
	10161: 52,  // meowth-galar
	10162: 77,  // ponyta-galar
	10163: 78,  // rapidash-galar
	10164: 79,  // slowpoke-galar
	10165: 80,  // slowbro-galar
	10166: 83,  // farfetchd-galar
	10167: 110, // weezing-galar
	10168: 122, // mr-mime-galar
	10169: 144, // articuno-galar
	10170: 145, // zapdos-galar
	10171: 146, // moltres-galar
	10172: 199, // slowking-galar
	10173: 222, // corsola-galar
	10174: 263, // zigzagoon-galar
	10175: 264, // linoone-galar
	10176: 554, // darumaka-galar
	10177: 555, // darmanitan-galar-standard
	10178: 555, // darmanitan-galar-zen
	10179: 562, // yamask-galar
	10180: 618, // stunfisk-galar

	// Hisuian forms
	10229: 58,  // growlithe-hisui
	10230: 59,  // arcanine-hisui
	10231: 100, // voltorb-hisui
	10232: 101, // electrode-hisui
	10233: 157, // typhlosion-hisui
	10234: 211, // qwilfish-hisui
	10235: 215, // sneasel-hisui
	10236: 503, // samurott-hisui
	10237: 549, // lilligant-hisui
	10238: 570, // zorua-hisui
	10239: 571, // zoroark-hisui
	10240: 628, // braviary-hisui
	10241: 705, // sliggoo-hisui
	10242: 706, // goodra-hisui
	10243: 713, // avalugg-hisui
	10244: 724, // decidueye-hisui

	// Paldean forms
	10250: 128, // tauros-paldea-combat-breed
	10251: 128, // tauros-paldea-blaze-breed
	10252: 128, // tauros-paldea-aqua-breed
	10253: 194, // wooper-paldea
}
