package collector

import (
	"strconv"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	models "github.com/RoGogDBD/metric-pusher/internal/model"
)

// SystemCollector собирает системные метрики через gopsutil:
// общую и свободную память, а также загрузку каждого ядра CPU.
type SystemCollector struct{}

func NewSystemCollector() *SystemCollector {
	return &SystemCollector{}
}

func (c *SystemCollector) Name() string { return "system" }

func (c *SystemCollector) Collect() ([]models.Metric, error) {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return nil, err
	}

	metrics := []models.Metric{
		{Name: "TotalMemory", Type: models.Gauge, Value: float64(vm.Total)},
		{Name: "FreeMemory", Type: models.Gauge, Value: float64(vm.Free)},
	}

	utilization, err := cpu.Percent(0, true)
	if err != nil {
		return nil, err
	}
	for i, u := range utilization {
		metrics = append(metrics, models.Metric{
			Name:  "CPUutilization" + strconv.Itoa(i+1),
			Type:  models.Gauge,
			Value: u,
		})
	}
	return metrics, nil
}
