package mmu

// slave protocol state
type state uint

const (
	idle      state = iota
	operation       // awaiting operation word
	operands        // awaiting operands
	rdval           // rdval pending
	wrval           // wrval pending
	status          // status word available
	result          // result word available
)

var stateNames = [...]string{"idle", "operation", "operands", "rdval", "wrval", "status", "result"}

func (s state) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "unknown"
}

// Format14 - slave ID byte of the memory management instructions
const Format14 = 0x1e

// format 14 operations
const (
	OpRDVAL = 0
	OpWRVAL = 1
	OpLMR   = 2
	OpSMR   = 3
)

// command cost in cycles, charged when status is read
const (
	tcyValidate = 21
	tcyLMR      = 30
	tcySMR      = 25
)

// Slave status word bits
const (
	SlaveQ  = 0x0001 // quit (error)
	SlaveL  = 0x0004
	SlaveF  = 0x0020 // flag, set by a failed validate
	SlaveZ  = 0x0040
	SlaveN  = 0x0080
	SlaveOK = 0
)

// Register quick field values
const (
	BPR0 = 0x0 // breakpoint register 0
	BPR1 = 0x1 // breakpoint register 1
	PF0  = 0x4 // program flow register 0
	PF1  = 0x5 // program flow register 1
	SC   = 0x8 // sequential count register
	MSR  = 0xa // memory management status register
	BCNT = 0xb // breakpoint counter register
	PTB0 = 0xc // page table base register 0
	PTB1 = 0xd // page table base register 1
	EIA  = 0xf // error/invalidate address register
)

// page table base register
const (
	PtbAB = 0x00fffc00 // address bits
	PtbMS = 0x80000000 // memory system
)

// virtual address fields
const (
	VaIndex1 = 0x00ff0000
	VaIndex2 = 0x0000fe00
	VaOffset = 0x000001ff
)

// error/invalidate address register
const (
	EiaVA = 0x00ffffff // virtual address
	EiaAS = 0x80000000 // address space
)

// AccessType is the NS32000 bus status of an access
type AccessType uint

const (
	StIAM AccessType = 0x4 // interrupt acknowledge, master
	StIAC AccessType = 0x5 // interrupt acknowledge, cascaded
	StEIM AccessType = 0x6 // end of interrupt, master
	StEIC AccessType = 0x7 // end of interrupt, cascaded
	StSIF AccessType = 0x8 // sequential instruction fetch
	StNIF AccessType = 0x9 // non-sequential instruction fetch
	StODT AccessType = 0xa // operand data transfer
	StRMW AccessType = 0xb // read-modify-write operand
	StEAR AccessType = 0xc // effective address read
	StSOP AccessType = 0xd // slave operand
	StSST AccessType = 0xe // slave status
	StSID AccessType = 0xf // slave ID
)

// Result of a translation
type Result int

const (
	// Complete - the address was translated (or passed through)
	Complete Result = iota
	// Cancel - a pending validate command finished with the F flag
	Cancel
	// Abort - the caller has to treat the access as failed
	Abort
)

func (r Result) String() string {
	switch r {
	case Complete:
		return "complete"
	case Cancel:
		return "cancel"
	case Abort:
		return "abort"
	}
	return "invalid"
}

// Verbosity bits for SetVerbose
const (
	LogGeneral   = 1 << 0
	LogTranslate = 1 << 1
)
