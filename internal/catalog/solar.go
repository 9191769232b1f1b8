package catalog

// solarSystem is a JPL Horizons snapshot of the sun, the eight planets, the
// moon and pluto, heliocentric.
var solarSystem = Catalog{
	"sun": {
		Type: "star", Radius: 695700.0, Mass: 1.989e+30, Rotation: 25.38, Axis: 0,
		Color: [3]float64{1, 1, 0},
		Pos:   [3]float64{0, 0, 0},
		Velo:  [3]float64{0, 0, 0},
	},
	"mercury": {
		Type: "planet", Radius: 2440.0, Mass: 3.302e+23, Rotation: 58.6375, Axis: 0.1266,
		Color: [3]float64{0.5, 0.5, 0.5},
		Pos:   [3]float64{9.255100071693633e+06, -6.844900336068696e+07, -6.405952563120015e+06},
		Velo:  [3]float64{4.046804247659092e+01, 9.017841437658214e+00, -3.033027133319246e+00},
	},
	"venus": {
		Type: "planet", Radius: 6051.8, Mass: 48.685e+23, Rotation: 116.75, Axis: 177.4,
		Color: [3]float64{1, 1, 0.5},
		Pos:   [3]float64{1.027741060879380e+08, -3.583854718767664e+07, -6.431824201027364e+06},
		Velo:  [3]float64{1.311648801769400e+01, 3.288285308205970e+01, -4.375313612701337e-01},
	},
	"earth": {
		Type: "planet", Radius: 6371.01, Mass: 5.97219e+24, Rotation: 1, Axis: 23.439,
		Color: [3]float64{0, 0, 1},
		Pos:   [3]float64{8.079866450442405e+07, 1.230866659547766e+08, -2.182690294142067e+04},
		Velo:  [3]float64{-2.343899774985144e+01, 1.607939083355236e+01, -2.482380056587932e-01},
	},
	"moon": {
		Type: "moon", Radius: 1737.4, Mass: 734.9e+20, Rotation: 27.321582, Axis: 1.5424,
		Color: [3]float64{1, 0, 0},
		Pos:   [3]float64{8.062413025435171e+07, 1.234164610704385e+08, -4.343021994822472e+04},
		Velo:  [3]float64{-2.439792085287836e+01, 1.565770586122734e+01, -1.831114165415926e-01},
	},
	"mars": {
		Type: "planet", Radius: 3389.9, Mass: 6.4185e+23, Rotation: 1.03, Axis: 25.0,
		Color: [3]float64{1, 0, 0},
		Pos:   [3]float64{2.032685371078939e+08, -3.962793386640252e+07, -5.822480892232347e+06},
		Velo:  [3]float64{7.459977547767656e+00, 2.576819525480232e+01, 1.605947816239706e-01},
	},
	"jupiter": {
		Type: "planet", Radius: 66854.0, Mass: 1898.13e+24, Rotation: 4383.076356, Axis: 3.0,
		Color: [3]float64{1, 0.5, 0},
		Pos:   [3]float64{-8.089227812977122e+08, -1.065094229099199e+08, 1.852218415786730e+07},
		Velo:  [3]float64{3.514641568483240e+00, -1.245134241541998e+01, -2.300976634495555e-01},
	},
	"saturn": {
		Type: "planet", Radius: 60268.0, Mass: 5.68319e+26, Rotation: 0.44583, Axis: 26.7,
		Color: [3]float64{0.96, 0.87, 0.7},
		Pos:   [3]float64{-3.127933508585088e+08, -1.469960944059730e+09, 3.797033320852983e+07},
		Velo:  [3]float64{1.089987578387726e+01, -2.154081382566915e+00, -5.661653116858862e-01},
	},
	"uranus": {
		Type: "planet", Radius: 25559.0, Mass: 86.8103e+24, Rotation: 0.72, Axis: 97.9,
		Color: [3]float64{0, 0, 0.8},
		Pos:   [3]float64{2.753480527989317e+09, 1.148003935416685e+09, -3.140417675063431e+07},
		Velo:  [3]float64{-6.922708993176232e-01, 5.853114545198699e+00, -1.904703742049341e-01},
	},
	"neptune": {
		Type: "planet", Radius: 24766.0, Mass: 102.41e+24, Rotation: 0.67, Axis: 29.6,
		Color: [3]float64{0, 0, 0.8},
		Pos:   [3]float64{4.232521912110978e+09, -1.469978662546048e+09, -6.730315386371720e+07},
		Velo:  [3]float64{3.725346179103186e+00, 5.053542161565510e+00, -3.929685829395817e-01},
	},
	"pluto": {
		Type: "dwarf", Radius: 1195.0, Mass: 1.307e+22, Rotation: 6.39, Axis: 122.5,
		Color: [3]float64{0.96, 0.87, 0.7},
		Pos:   [3]float64{1.425320186767629e+09, -4.759896898908038e+09, 9.676126099674392e+07},
		Velo:  [3]float64{7.281993256625682e+00, 3.065990845449275e-01, -1.820613342911064e+00},
	},
}

// Builtin returns a fresh copy of the solar system catalog.
func Builtin() Catalog {
	return solarSystem.Clone()
}
