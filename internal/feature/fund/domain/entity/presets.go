package entity

// presetNames maps well-known fund codes to display names.
var presetNames = map[string]string{
	"510300": "沪深300ETF",
	"510500": "500ETF",
	"512880": "证券ETF",
	"159915": "创业板ETF",
	"159941": "科创50ETF",
	"159919": "沪深300ETF",
	"511880": "银华ETF",
	"510880": "红利ETF",
	"159920": "创成长ETF",
	"159937": "中证1000ETF",
}

// DefaultCodes are shown when no fund is tracked yet.
var DefaultCodes = []string{"510300", "512880"}

// commonCodes is the offline search catalogue, in display order.
var commonCodes = []string{"510300", "510500", "512880", "159915", "159941"}

// PresetName returns the preset display name for code, or the code itself.
func PresetName(code string) string {
	if name, ok := presetNames[code]; ok {
		return name
	}
	return code
}

// PresetFund builds a Fund from the preset table.
func PresetFund(code string) Fund {
	return Fund{
		Code:     code,
		Name:     PresetName(code),
		Exchange: ExchangeOf(code),
		Category: "ETF",
		IsActive: true,
	}
}

// DefaultFunds returns the funds shown when the list is empty.
func DefaultFunds() []Fund {
	out := make([]Fund, 0, len(DefaultCodes))
	for _, c := range DefaultCodes {
		out = append(out, PresetFund(c))
	}
	return out
}

// CommonFunds returns the offline search catalogue.
func CommonFunds() []Fund {
	out := make([]Fund, 0, len(commonCodes))
	for _, c := range commonCodes {
		out = append(out, PresetFund(c))
	}
	return out
}
