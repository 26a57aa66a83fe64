package fontsettings

// Font is one selectable font family.
type Font struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// SystemFont is the default family stack.
const SystemFont = `system-ui, -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Arial, sans-serif`

// AvailableFonts is the closed set of families a setting may hold.
var AvailableFonts = []Font{
	{Label: "System (Varsayılan)", Value: SystemFont},
	{Label: "Arial", Value: "Arial, Helvetica, sans-serif"},
	{Label: "Times New Roman", Value: `"Times New Roman", Times, serif`},
	{Label: "Georgia", Value: "Georgia, serif"},
	{Label: "Verdana", Value: "Verdana, Geneva, sans-serif"},
	{Label: "Tahoma", Value: "Tahoma, Geneva, sans-serif"},
	{Label: "Trebuchet MS", Value: `"Trebuchet MS", Helvetica, sans-serif`},
	{Label: "Courier New", Value: `"Courier New", Courier, monospace`},
	{Label: "Palatino", Value: `"Palatino Linotype", "Book Antiqua", Palatino, serif`},
	{Label: "Roboto", Value: `"Roboto", sans-serif`},
	{Label: "Open Sans", Value: `"Open Sans", sans-serif`},
	{Label: "Lato", Value: `"Lato", sans-serif`},
	{Label: "Montserrat", Value: `"Montserrat", sans-serif`},
	{Label: "Poppins", Value: `"Poppins", sans-serif`},
	{Label: "Nunito", Value: `"Nunito", sans-serif`},
	{Label: "Noto Sans", Value: `"Noto Sans", sans-serif`},
	{Label: "Amiri", Value: `"Amiri", serif`},
}

// FontWeights is the closed set of weights a setting may hold.
var FontWeights = []string{"normal", "bold", "lighter", "bolder", "300", "500", "600", "700", "800", "900"}

const (
	MinFontSize = 8
	MaxFontSize = 48
)

func knownFont(family string) bool {
	for _, f := range AvailableFonts {
		if f.Value == family {
			return true
		}
	}
	return false
}

func knownWeight(weight string) bool {
	for _, w := range FontWeights {
		if w == weight {
			return true
		}
	}
	return false
}
