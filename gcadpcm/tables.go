package gcadpcm

// The fixed LyN coefficient pairs. Every frame picks one of these eight
// (c1, c2) predictors; the table is baked into the engine's decoder and is
// never written into the container.
var CoefTable = [8][2]int32{
	{1195, -787},  // 04AB FCED
	{1929, -289},  // 0789 FEDF
	{2466, -1307}, // 09A2 FAE5
	{3216, -1343}, // 0C90 FAC1
	{2125, -1372}, // 084D FAA4
	{2434, -521},  // 0982 FDF7
	{2806, -1286}, // 0AF6 FAFA
	{3046, -1035}, // 0BE6 FBF5
}
