package tic

// CutReason is the relay cut-off cause encoded in STGE bits 1-3.
type CutReason string

const (
	CutClose      CutReason = "CLOSE"
	CutOverpower  CutReason = "OVERPOWER"
	CutSurtension CutReason = "SURTENSION"
	CutDelesting  CutReason = "DELESTING"
	CutOnCPL      CutReason = "ONCPL"
	CutHotHigh    CutReason = "HOTHIGH"
	CutHotLow     CutReason = "HOTLOW"
	CutUnknown    CutReason = "UNKNOWN"
)

// SupplyMode is the meter operating mode encoded in STGE bit 8.
type SupplyMode string

const (
	ModeProvider SupplyMode = "PROVIDER"
	ModeConsumer SupplyMode = "CONSUMER"
)

// EnergyDirection is the active energy sign encoded in STGE bit 9.
type EnergyDirection string

const (
	EnergyPositive EnergyDirection = "POSITIVE"
	EnergyNegative EnergyDirection = "NEGATIVE"
)

// RegisterStatus is the decoded STGE status register. Raw keeps the full
// 32-bit value; the remaining fields decode the documented bits
// (Enedis-NOI-CPT_54E §6.2.3.14).
type RegisterStatus struct {
	Raw         uint32          `json:"raw"`
	RelayOpen   bool            `json:"relay_open"`
	Cut         CutReason       `json:"cut"`
	DoorOpen    bool            `json:"door_open"`
	OverTension bool            `json:"over_tension"`
	OverPower   bool            `json:"over_power"`
	Mode        SupplyMode      `json:"mode"`
	Energy      EnergyDirection `json:"energy"`
}

// DecodeRegister expands a raw STGE value into its documented fields.
func DecodeRegister(raw uint32) RegisterStatus {
	reg := RegisterStatus{
		Raw:       raw,
		RelayOpen: raw&0x01 == 1,
		DoorOpen:  raw>>4&0x01 == 1,

		OverTension: raw>>6&0x01 == 1,
		OverPower:   raw>>7&0x01 == 1,
	}

	switch raw >> 1 & 0x07 {
	case 0:
		reg.Cut = CutClose
	case 1:
		reg.Cut = CutOverpower
	case 2:
		reg.Cut = CutSurtension
	case 3:
		reg.Cut = CutDelesting
	case 4:
		reg.Cut = CutOnCPL
	case 5:
		reg.Cut = CutHotHigh
	case 6:
		reg.Cut = CutHotLow
	default:
		reg.Cut = CutUnknown
	}

	if raw>>8&0x01 == 1 {
		reg.Mode = ModeProvider
	} else {
		reg.Mode = ModeConsumer
	}

	if raw>>9&0x01 == 1 {
		reg.Energy = EnergyPositive
	} else {
		reg.Energy = EnergyNegative
	}

	return reg
}
