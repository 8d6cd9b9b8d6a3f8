// Package sensor maps decoded TIC records onto logical sensors and decides,
// per sensor, when a reading is worth notifying subscribers about.
package sensor

// Unit is the physical unit of a sensor's readings, as far as the TIC
// grammar defines one.
type Unit string

const (
	UnitAmpere     Unit = "A"
	UnitVolt       Unit = "V"
	UnitVoltAmpere Unit = "VA"
	UnitWattHour   Unit = "Wh"
	UnitTime       Unit = "time"
	UnitNone       Unit = ""
)

// Sensor UIDs. A sensor is one logical telemetry channel; multi-index
// sensors carry several sub-channels (aggregate + per phase, or
// today/yesterday pairs).
const (
	SensorIINST    = "IINST"
	SensorSINSTS   = "SINSTS"
	SensorIRMS     = "IRMS"
	SensorURMS     = "URMS"
	SensorUMOY     = "UMOY"
	SensorADPS     = "ADPS"
	SensorPCOUP    = "PCOUP"
	SensorEnergy   = "ENERGY"
	SensorTariff   = "TARIFF"
	SensorNTARF    = "NTARF"
	SensorNJOURF   = "NJOURF"
	SensorMSG      = "MSG"
	SensorADSC     = "ADSC"
	SensorRelay    = "RELAY"
	SensorSTGE     = "STGE"
	SensorDate     = "DATE"
	SensorPowerIn  = "POWERIN"
	SensorPowerOut = "POWEROUT"
	SensorProfile  = "PROFILE"
)

// Meta describes one logical sensor.
type Meta struct {
	UID        string `json:"uid"`
	Name       string `json:"name"`
	Info       string `json:"info"`
	Unit       Unit   `json:"unit"`
	Slots      int    `json:"slots"`
	MultiIndex bool   `json:"multi_index"`
}

// Catalog lists every sensor the dispatch table can route to.
var Catalog = map[string]Meta{
	SensorIINST: {
		UID: SensorIINST, Name: "instant-current",
		Info: "instantaneous current, aggregate and per phase",
		Unit: UnitAmpere, Slots: 4, MultiIndex: true,
	},
	SensorSINSTS: {
		UID: SensorSINSTS, Name: "instant-power",
		Info: "instantaneous apparent power, aggregate and per phase",
		Unit: UnitVoltAmpere, Slots: 4, MultiIndex: true,
	},
	SensorIRMS: {
		UID: SensorIRMS, Name: "rms-current",
		Info: "RMS current per phase",
		Unit: UnitAmpere, Slots: 3, MultiIndex: true,
	},
	SensorURMS: {
		UID: SensorURMS, Name: "rms-voltage",
		Info: "RMS voltage per phase",
		Unit: UnitVolt, Slots: 3, MultiIndex: true,
	},
	SensorUMOY: {
		UID: SensorUMOY, Name: "average-voltage",
		Info: "mean voltage per phase, timestamped",
		Unit: UnitVolt, Slots: 3, MultiIndex: true,
	},
	SensorADPS: {
		UID: SensorADPS, Name: "over-current",
		Info: "over-consumption warning, aggregate and per phase",
		Unit: UnitAmpere, Slots: 4, MultiIndex: true,
	},
	SensorPCOUP: {
		UID: SensorPCOUP, Name: "power-limits",
		Info: "cut-off and subscribed apparent power",
		Unit: UnitVoltAmpere, Slots: 2, MultiIndex: true,
	},
	SensorEnergy: {
		UID: SensorEnergy, Name: "energy-counter",
		Info: "total consumed/injected active energy",
		Unit: UnitWattHour, Slots: 2, MultiIndex: true,
	},
	SensorTariff: {
		UID: SensorTariff, Name: "tariff-name",
		Info: "current tariff and calendar names",
		Unit: UnitNone, Slots: 2, MultiIndex: true,
	},
	SensorNTARF: {
		UID: SensorNTARF, Name: "tariff-index",
		Info: "active provider tariff index",
		Unit: UnitNone, Slots: 1,
	},
	SensorNJOURF: {
		UID: SensorNJOURF, Name: "calendar-day",
		Info: "current and next day number in the provider calendar",
		Unit: UnitNone, Slots: 2, MultiIndex: true,
	},
	SensorMSG: {
		UID: SensorMSG, Name: "provider-message",
		Info: "provider short messages",
		Unit: UnitNone, Slots: 2, MultiIndex: true,
	},
	SensorADSC: {
		UID: SensorADSC, Name: "meter-address",
		Info: "meter address code",
		Unit: UnitNone, Slots: 1,
	},
	SensorRelay: {
		UID: SensorRelay, Name: "relay-status",
		Info: "current relay position",
		Unit: UnitNone, Slots: 1,
	},
	SensorSTGE: {
		UID: SensorSTGE, Name: "meter-register",
		Info: "meter status register",
		Unit: UnitNone, Slots: 1,
	},
	SensorDate: {
		UID: SensorDate, Name: "current-date",
		Info: "meter date and time",
		Unit: UnitTime, Slots: 1,
	},
	SensorPowerIn: {
		UID: SensorPowerIn, Name: "power-in",
		Info: "max consumed apparent power, today and yesterday",
		Unit: UnitVoltAmpere, Slots: 2, MultiIndex: true,
	},
	SensorPowerOut: {
		UID: SensorPowerOut, Name: "power-out",
		Info: "max injected apparent power, today and yesterday",
		Unit: UnitVoltAmpere, Slots: 2, MultiIndex: true,
	},
	SensorProfile: {
		UID: SensorProfile, Name: "provider-profile",
		Info: "next day and peak day tariff change points",
		Unit: UnitNone, Slots: 2, MultiIndex: true,
	},
}
