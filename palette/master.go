package palette

// masterColors is the game's master palette. Order is part of the tie-break
// contract of Palette.Index and must not change.
var masterColors = []RGB{
	// greens: grass, vegetation
	{74, 140, 58},
	{106, 176, 76},
	{140, 200, 96},
	{56, 100, 46},
	{168, 212, 120},

	// earth: dirt, sand, paths
	{160, 100, 60},
	{192, 140, 90},
	{210, 180, 140},
	{140, 80, 50},
	{225, 200, 160},

	// greys: asphalt, concrete, roofs
	{80, 80, 90},
	{120, 120, 125},
	{170, 170, 175},
	{55, 55, 60},
	{200, 200, 200},

	// warm building tones
	{180, 90, 50},
	{200, 120, 70},
	{220, 180, 100},
	{240, 220, 180},
	{150, 70, 45},

	// water
	{80, 140, 200},
	{120, 180, 220},
	{60, 100, 160},

	// accents: flowers, signs, outlines
	{220, 60, 80},
	{240, 160, 50},
	{200, 80, 160},
	{255, 240, 200},
	{40, 40, 45},

	// whites
	{245, 245, 240},
	{255, 255, 255},
}
