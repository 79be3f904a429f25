package cli

import (
	"strings"

	dto "github.com/prometheus/client_model/go"
)

// reportMetrics logs every non-zero counter gathered during the command.
func (a *App) reportMetrics() {
	if a.reg == nil {
		return
	}
	families, err := a.reg.Gather()
	if err != nil {
		a.log.Warn().Err(err).Msg("Failed to gather cache metrics")
		return
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			v := m.GetCounter().GetValue()
			if v == 0 {
				continue
			}
			a.log.Info().
				Str("metric", mf.GetName()).
				Str("labels", labelString(m)).
				Float64("value", v).
				Msg("Cache counter")
		}
	}
}

func labelString(m *dto.Metric) string {
	pairs := make([]string, 0, len(m.GetLabel()))
	for _, lp := range m.GetLabel() {
		pairs = append(pairs, lp.GetName()+"="+lp.GetValue())
	}
	return strings.Join(pairs, ",")
}
