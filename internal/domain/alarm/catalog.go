package alarm

var (
	// CPULowerLimitVCPUs fires when CPU usage drops below the configured vCPUs.
	CPULowerLimitVCPUs = Kind{Name: "CPU_LOWER_LIMIT_VCPUS", Category: CategoryNumeric, Bound: BoundLower, Metric: "CPUUsage"}
	// CPUUpperLimitVCPUs fires when CPU usage exceeds the configured vCPUs.
	CPUUpperLimitVCPUs = Kind{Name: "CPU_UPPER_LIMIT_VCPUS", Category: CategoryNumeric, Bound: BoundUpper, Metric: "CPUUsage"}
	// MemoryLowerLimitGB fires when memory usage drops below the configured GB.
	MemoryLowerLimitGB = Kind{Name: "MEMORY_LOWER_LIMIT_GB", Category: CategoryNumeric, Bound: BoundLower, Metric: "MemoryUsage"}
	// MemoryUpperLimitGB fires when memory usage exceeds the configured GB.
	MemoryUpperLimitGB = Kind{Name: "MEMORY_UPPER_LIMIT_GB", Category: CategoryNumeric, Bound: BoundUpper, Metric: "MemoryUsage"}
	// DiskUsageUpperLimitGB fires when disk usage exceeds the configured GB.
	DiskUsageUpperLimitGB = Kind{Name: "DISK_USAGE_UPPER_LIMIT_GB", Category: CategoryNumeric, Bound: BoundUpper, Metric: "DiskUsage"}
	// NetworkTxUpperLimitGB fires when egress traffic exceeds the configured GB.
	NetworkTxUpperLimitGB = Kind{Name: "NETWORK_TX_UPPER_LIMIT_GB", Category: CategoryNumeric, Bound: BoundUpper, Metric: "NetworkTx"}
	// HealthCheckFailed fires when the monitored service fails its health check.
	HealthCheckFailed = Kind{Name: "HEALTH_CHECK_FAILED", Category: CategorySignal, Metric: "HealthCheckFailed"}
)

// Kinds returns the closed set of alarm kinds in their defined order.
// The slice is freshly allocated on every call.
func Kinds() []Kind {
	return []Kind{
		CPULowerLimitVCPUs,
		CPUUpperLimitVCPUs,
		MemoryLowerLimitGB,
		MemoryUpperLimitGB,
		DiskUsageUpperLimitGB,
		NetworkTxUpperLimitGB,
		HealthCheckFailed,
	}
}

// KindByName returns the catalog kind with the given stable name.
func KindByName(name string) (Kind, bool) {
	for _, kind := range Kinds() {
		if kind.Name == name {
			return kind, true
		}
	}

	return Kind{}, false
}

// position returns the catalog index of the kind, or -1 for unknown kinds.
func position(kind Kind) int {
	for i, k := range Kinds() {
		if k == kind {
			return i
		}
	}

	return -1
}
