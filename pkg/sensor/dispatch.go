package sensor

// Target names the cache slot a decoded record lands in.
type Target struct {
	Sensor string
	Index  int
}

// dispatch routes every decoded label to exactly one (sensor, sub-index)
// pair. Index 0 is the aggregate reading where one exists, 1..3 the phases;
// paired sensors use 0 for the current and 1 for the previous/secondary
// reading.
var dispatch = map[string]Target{
	"IINST":  {SensorIINST, 0},
	"IINST1": {SensorIINST, 1},
	"IINST2": {SensorIINST, 2},
	"IINST3": {SensorIINST, 3},

	"SINSTS":  {SensorSINSTS, 0},
	"SINSTS1": {SensorSINSTS, 1},
	"SINSTS2": {SensorSINSTS, 2},
	"SINSTS3": {SensorSINSTS, 3},

	"IRMS1": {SensorIRMS, 0},
	"IRMS2": {SensorIRMS, 1},
	"IRMS3": {SensorIRMS, 2},

	"URMS1": {SensorURMS, 0},
	"URMS2": {SensorURMS, 1},
	"URMS3": {SensorURMS, 2},

	"UMOY1": {SensorUMOY, 0},
	"UMOY2": {SensorUMOY, 1},
	"UMOY3": {SensorUMOY, 2},

	"ADPS":  {SensorADPS, 0},
	"ADIR1": {SensorADPS, 1},
	"ADIR2": {SensorADPS, 2},
	"ADIR3": {SensorADPS, 3},

	"PCOUP": {SensorPCOUP, 0},
	"PREF":  {SensorPCOUP, 1},

	"EAST": {SensorEnergy, 0},
	"EAIT": {SensorEnergy, 1},

	"LTARF": {SensorTariff, 0},
	"NGTF":  {SensorTariff, 1},

	"NTARF": {SensorNTARF, 0},

	"NJOURF":   {SensorNJOURF, 0},
	"NJOURF+1": {SensorNJOURF, 1},

	"MSG1": {SensorMSG, 0},
	"MSG2": {SensorMSG, 1},

	"ADSC": {SensorADSC, 0},

	"RELAIS": {SensorRelay, 0},

	"STGE": {SensorSTGE, 0},

	"DATE": {SensorDate, 0},

	"SMAXSN":   {SensorPowerIn, 0},
	"SMAXSN-1": {SensorPowerIn, 1},

	"SMAXIN":   {SensorPowerOut, 0},
	"SMAXIN-1": {SensorPowerOut, 1},

	"PJOURF+1": {SensorProfile, 0},
	"PPOINTE":  {SensorProfile, 1},
}

// Route returns the cache target for a decoded label.
func Route(label string) (Target, bool) {
	t, ok := dispatch[label]
	return t, ok
}
