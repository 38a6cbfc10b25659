package layers

import "github.com/williamofai/ctrain/kernel"

// sigmoidLUT and tanhLUT are 257-entry Q16.16 tables over [-8, +8],
// spaced 1/16 apart, embedded as the canonical reference activation
// tables. They are the sole floating-point-derived artifacts in this
// package: generated once offline and locked in as data, never
// recomputed at runtime.
var sigmoidLUT = [257]kernel.Fixed{
	0, 23, 25, 27, 28, 30, 32, 34,
	36, 39, 41, 44, 47, 50, 53, 56,
	60, 64, 68, 72, 77, 82, 87, 92,
	98, 105, 111, 119, 126, 134, 143, 152,
	162, 172, 184, 195, 208, 221, 236, 251,
	267, 284, 302, 321, 342, 364, 387, 412,
	439, 467, 497, 528, 562, 598, 636, 677,
	720, 766, 815, 867, 922, 980, 1042, 1109,
	1179, 1253, 1333, 1417, 1506, 1601, 1701, 1808,
	1921, 2041, 2168, 2303, 2446, 2598, 2758, 2928,
	3108, 3298, 3500, 3713, 3938, 4176, 4427, 4692,
	4971, 5266, 5577, 5904, 6249, 6611, 6992, 7392,
	7812, 8252, 8714, 9197, 9702, 10230, 10782, 11357,
	11955, 12579, 13226, 13898, 14595, 15316, 16062, 16832,
	17625, 18442, 19282, 20143, 21025, 21928, 22849, 23788,
	24743, 25712, 26695, 27689, 28693, 29705, 30723, 31744,
	32768, 33792, 34813, 35831, 36843, 37847, 38841, 39824,
	40793, 41748, 42687, 43608, 44511, 45393, 46254, 47094,
	47911, 48704, 49474, 50220, 50941, 51638, 52310, 52957,
	53581, 54179, 54754, 55306, 55834, 56339, 56822, 57284,
	57724, 58144, 58544, 58925, 59287, 59632, 59959, 60270,
	60565, 60844, 61109, 61360, 61598, 61823, 62036, 62238,
	62428, 62608, 62778, 62938, 63090, 63233, 63368, 63495,
	63615, 63728, 63835, 63935, 64030, 64119, 64203, 64283,
	64357, 64427, 64494, 64556, 64614, 64669, 64721, 64770,
	64816, 64859, 64900, 64938, 64974, 65008, 65039, 65069,
	65097, 65124, 65149, 65172, 65194, 65215, 65234, 65252,
	65269, 65285, 65300, 65315, 65328, 65341, 65352, 65364,
	65374, 65384, 65393, 65402, 65410, 65417, 65425, 65431,
	65438, 65444, 65449, 65454, 65459, 65464, 65468, 65472,
	65476, 65480, 65483, 65486, 65489, 65492, 65495, 65497,
	65500, 65502, 65504, 65506, 65508, 65509, 65511, 65513,
	65536,
}

var tanhLUT = [257]kernel.Fixed{
	-65536, -65536, -65536, -65536, -65536, -65536, -65536, -65536,
	-65536, -65536, -65536, -65536, -65536, -65536, -65536, -65536,
	-65536, -65536, -65536, -65536, -65536, -65536, -65536, -65536,
	-65536, -65536, -65536, -65536, -65536, -65535, -65535, -65535,
	-65535, -65535, -65535, -65535, -65535, -65534, -65534, -65534,
	-65534, -65534, -65533, -65533, -65532, -65532, -65531, -65531,
	-65530, -65529, -65528, -65527, -65526, -65525, -65523, -65522,
	-65520, -65518, -65515, -65512, -65509, -65506, -65502, -65497,
	-65492, -65486, -65480, -65472, -65464, -65454, -65443, -65431,
	-65417, -65401, -65383, -65362, -65339, -65313, -65283, -65250,
	-65212, -65169, -65120, -65065, -65003, -64932, -64852, -64761,
	-64659, -64543, -64412, -64263, -64096, -63907, -63693, -63451,
	-63179, -62871, -62524, -62134, -61694, -61199, -60643, -60019,
	-59320, -58536, -57660, -56683, -55593, -54382, -53038, -51552,
	-49912, -48108, -46131, -43972, -41625, -39084, -36346, -33412,
	-30285, -26973, -23485, -19838, -16051, -12146, -8150, -4091,
	0, 4091, 8150, 12146, 16051, 19838, 23485, 26973,
	30285, 33412, 36346, 39084, 41625, 43972, 46131, 48108,
	49912, 51552, 53038, 54382, 55593, 56683, 57660, 58536,
	59320, 60019, 60643, 61199, 61694, 62134, 62524, 62871,
	63179, 63451, 63693, 63907, 64096, 64263, 64412, 64543,
	64659, 64761, 64852, 64932, 65003, 65065, 65120, 65169,
	65212, 65250, 65283, 65313, 65339, 65362, 65383, 65401,
	65417, 65431, 65443, 65454, 65464, 65472, 65480, 65486,
	65492, 65497, 65502, 65506, 65509, 65512, 65515, 65518,
	65520, 65522, 65523, 65525, 65526, 65527, 65528, 65529,
	65530, 65531, 65531, 65532, 65532, 65533, 65533, 65534,
	65534, 65534, 65534, 65534, 65535, 65535, 65535, 65535,
	65535, 65535, 65535, 65535, 65536, 65536, 65536, 65536,
	65536, 65536, 65536, 65536, 65536, 65536, 65536, 65536,
	65536, 65536, 65536, 65536, 65536, 65536, 65536, 65536,
	65536, 65536, 65536, 65536, 65536, 65536, 65536, 65536,
	65536,
}