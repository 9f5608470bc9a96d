package metrics

import (
	"encoding/json"
	"net/http"
	"time"

	dto "github.com/prometheus/client_model/go"
)

// Summary is the JSON response for the metrics summary endpoint.
type Summary struct {
	HTTP      httpSummary   `json:"http"`
	Materials materialsInfo `json:"materials"`
	Contact   contactInfo   `json:"contact"`
	Teams     teamsInfo     `json:"teams"`
	RateLimit rateLimitInfo `json:"rateLimit"`
	Auth      authInfo      `json:"auth"`
	DB        dbInfo        `json:"db"`
	Server    serverInfo    `json:"server"`
}

type httpSummary struct {
	TotalRequests float64 `json:"totalRequests"`
	ErrorRate     float64 `json:"errorRate"`
}

type materialsInfo struct {
	Uploads         float64 `json:"uploads"`
	RejectedUploads float64 `json:"rejectedUploads"`
}

type contactInfo struct {
	Messages float64 `json:"messages"`
}

type teamsInfo struct {
	Registrations float64 `json:"registrations"`
}

type rateLimitInfo struct {
	Rejections float64 `json:"rejections"`
}

type authInfo struct {
	Failures  float64 `json:"failures"`
	Successes float64 `json:"successes"`
}

type dbInfo struct {
	TotalConns    float64 `json:"totalConns"`
	IdleConns     float64 `json:"idleConns"`
	AcquiredConns float64 `json:"acquiredConns"`
}

type serverInfo struct {
	StartTime     float64 `json:"startTime"`
	UptimeSeconds float64 `json:"uptimeSeconds"`
}

// SummaryHandler returns an http.HandlerFunc that serves a JSON summary of
// live metrics.
func (m *Metrics) SummaryHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m.handleSummary(w)
	}
}

func (m *Metrics) handleSummary(w http.ResponseWriter) {
	families, err := m.registry.Gather()
	if err != nil {
		http.Error(w, "failed to gather metrics", http.StatusInternalServerError)
		return
	}

	fam := make(map[string]*dto.MetricFamily, len(families))
	for _, f := range families {
		fam[f.GetName()] = f
	}

	summary := Summary{
		HTTP: httpSummary{
			TotalRequests: sumCounter(fam["atolye_http_requests_total"]),
			ErrorRate:     computeErrorRate(fam["atolye_http_requests_total"]),
		},
		Materials: materialsInfo{
			Uploads:         counterWithLabel(fam["atolye_material_uploads_total"], "outcome", "ok"),
			RejectedUploads: sumCounter(fam["atolye_material_uploads_total"]) - counterWithLabel(fam["atolye_material_uploads_total"], "outcome", "ok"),
		},
		Contact: contactInfo{
			Messages: counterValue(fam["atolye_contact_messages_total"]),
		},
		Teams: teamsInfo{
			Registrations: counterValue(fam["atolye_team_registrations_total"]),
		},
		RateLimit: rateLimitInfo{
			Rejections: sumCounter(fam["atolye_ratelimit_rejections_total"]),
		},
		Auth: authInfo{
			Failures:  sumCounter(fam["atolye_auth_failures_total"]),
			Successes: sumCounter(fam["atolye_auth_successes_total"]),
		},
		DB: dbInfo{
			TotalConns:    gaugeValue(fam["atolye_db_pool_total_conns"]),
			IdleConns:     gaugeValue(fam["atolye_db_pool_idle_conns"]),
			AcquiredConns: gaugeValue(fam["atolye_db_pool_acquired_conns"]),
		},
		Server: serverInfo{
			StartTime:     gaugeValue(fam["atolye_server_start_time_seconds"]),
			UptimeSeconds: float64(time.Now().Unix()) - gaugeValue(fam["atolye_server_start_time_seconds"]),
		},
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache, no-store")
	_ = json.NewEncoder(w).Encode(summary)
}

// --- Prometheus metric helpers ---

func sumCounter(f *dto.MetricFamily) float64 {
	if f == nil {
		return 0
	}
	var total float64
	for _, m := range f.GetMetric() {
		if m.GetCounter() != nil {
			total += m.GetCounter().GetValue()
		}
	}
	return total
}

func gaugeValue(f *dto.MetricFamily) float64 {
	if f == nil {
		return 0
	}
	ms := f.GetMetric()
	if len(ms) == 0 {
		return 0
	}
	if ms[0].GetGauge() != nil {
		return ms[0].GetGauge().GetValue()
	}
	return 0
}

func counterValue(f *dto.MetricFamily) float64 {
	if f == nil {
		return 0
	}
	ms := f.GetMetric()
	if len(ms) == 0 {
		return 0
	}
	if ms[0].GetCounter() != nil {
		return ms[0].GetCounter().GetValue()
	}
	return 0
}

func counterWithLabel(f *dto.MetricFamily, labelName, labelValue string) float64 {
	if f == nil {
		return 0
	}
	var total float64
	for _, m := range f.GetMetric() {
		for _, lp := range m.GetLabel() {
			if lp.GetName() == labelName && lp.GetValue() == labelValue {
				if m.GetCounter() != nil {
					total += m.GetCounter().GetValue()
				}
			}
		}
	}
	return total
}

func computeErrorRate(f *dto.MetricFamily) float64 {
	if f == nil {
		return 0
	}
	var total, errors float64
	for _, m := range f.GetMetric() {
		if m.GetCounter() == nil {
			continue
		}
		v := m.GetCounter().GetValue()
		total += v
		for _, lp := range m.GetLabel() {
			if lp.GetName() == "status_code" {
				code := lp.GetValue()
				if len(code) > 0 && code[0] >= '4' {
					errors += v
				}
			}
		}
	}
	if total == 0 {
		return 0
	}
	return errors / total
}
