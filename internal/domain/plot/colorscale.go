package plot

// DominanceColorScale is the shared red-white-blue scale: deep red for full
// away control, white at the neutral 0.5, deep blue for full home control.
// The activity maps reuse it so all heatmaps read on one palette.
func DominanceColorScale() []ColorStop {
	return []ColorStop{
		{Position: 0.0, Color: "rgb(103,0,31)"},
		{Position: 0.1, Color: "rgb(165,15,21)"},
		{Position: 0.2, Color: "rgb(203,24,29)"},
		{Position: 0.3, Color: "rgb(239,59,44)"},
		{Position: 0.4, Color: "rgb(251,106,74)"},
		{Position: 0.5, Color: "rgb(255,255,255)"},
		{Position: 0.6, Color: "rgb(158,202,225)"},
		{Position: 0.7, Color: "rgb(107,174,214)"},
		{Position: 0.8, Color: "rgb(66,146,198)"},
		{Position: 0.9, Color: "rgb(33,113,181)"},
		{Position: 1.0, Color: "rgb(5,48,97)"},
	}
}

// TeamActivityColorScale is a white-to-purple single-team intensity scale,
// kept for callers that want activity maps on their own palette.
func TeamActivityColorScale() []ColorStop {
	return []ColorStop{
		{Position: 0.0, Color: "rgb(255,255,255)"},
		{Position: 0.1, Color: "rgb(240,249,232)"},
		{Position: 0.2, Color: "rgb(204,235,197)"},
		{Position: 0.3, Color: "rgb(168,221,181)"},
		{Position: 0.4, Color: "rgb(123,204,196)"},
		{Position: 0.5, Color: "rgb(78,179,211)"},
		{Position: 0.6, Color: "rgb(43,140,190)"},
		{Position: 0.7, Color: "rgb(8,104,172)"},
		{Position: 0.8, Color: "rgb(8,64,129)"},
		{Position: 0.9, Color: "rgb(37,52,148)"},
		{Position: 1.0, Color: "rgb(68,1,84)"},
	}
}
