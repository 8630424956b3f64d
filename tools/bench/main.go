package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"runtime"
	"sort"
	"strconv"
	"sync"
	"time"

	"im-message/config"
	"im-message/pkg/idgen"
	"im-message/pkg/jwt"

	"github.com/google/uuid"
	"github.com/olekukonko/tablewriter"
	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/mem"
	"github.com/shirou/gopsutil/net"
)

// -------------------- 系统监控 --------------------

type SystemStats struct {
	Timestamp   time.Time
	CPUUsage    float64
	MemoryUsage float64
	MemoryUsed  uint64
	Goroutines  int
	NetworkConn int
}

type Monitor struct {
	mu       sync.Mutex
	stats    []SystemStats
	interval time.Duration
	stopChan chan struct{}
}

func NewMonitor(interval time.Duration) *Monitor {
	return &Monitor{
		stats:    make([]SystemStats, 0, 512),
		interval: interval,
		stopChan: make(chan struct{}),
	}
}

func (m *Monitor) collectStats() SystemStats {
	s := SystemStats{Timestamp: time.Now(), Goroutines: runtime.NumGoroutine()}
	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		s.CPUUsage = percents[0]
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		s.MemoryUsage = vm.UsedPercent
		s.MemoryUsed = vm.Used
	}
	if conns, err := net.Connections("tcp"); err == nil {
		for _, c := range conns {
			if c.Status == "ESTABLISHED" {
				s.NetworkConn++
			}
		}
	}

	m.mu.Lock()
	m.stats = append(m.stats, s)
	m.mu.Unlock()
	return s
}

func (m *Monitor) Start() {
	go func() {
		ticker := time.NewTicker(m.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s := m.collectStats()
				fmt.Printf("[%s] CPU: %.1f%% | 内存: %.1f%% (%.1fMB) | Goroutines: %d | TCP连接: %d\n",
					s.Timestamp.Format("15:04:05"), s.CPUUsage, s.MemoryUsage,
					float64(s.MemoryUsed)/1024/1024, s.Goroutines, s.NetworkConn,
				)
			case <-m.stopChan:
				return
			}
		}
	}()
}

func (m *Monitor) Stop() { close(m.stopChan) }

func (m *Monitor) GenerateReport() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.stats) == 0 {
		fmt.Println("没有监控数据")
		return
	}
	var sumCPU, sumMem, maxCPU, maxMem float64
	var maxGo, maxConn int
	for _, s := range m.stats {
		sumCPU += s.CPUUsage
		sumMem += s.MemoryUsage
		maxCPU = max(maxCPU, s.CPUUsage)
		maxMem = max(maxMem, s.MemoryUsage)
		maxGo = max(maxGo, s.Goroutines)
		maxConn = max(maxConn, s.NetworkConn)
	}
	n := float64(len(m.stats))

	fmt.Println("\n=== 系统监控报告 ===")
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"指标", "平均", "峰值"})
	table.Append([]string{"CPU", fmt.Sprintf("%.1f%%", sumCPU/n), fmt.Sprintf("%.1f%%", maxCPU)})
	table.Append([]string{"内存", fmt.Sprintf("%.1f%%", sumMem/n), fmt.Sprintf("%.1f%%", maxMem)})
	table.Append([]string{"Goroutine", "-", strconv.Itoa(maxGo)})
	table.Append([]string{"TCP连接", "-", strconv.Itoa(maxConn)})
	table.Render()
}

// -------------------- 消息写入压测 --------------------

type BenchStats struct {
	mu         sync.Mutex
	total      int
	succeeded  int
	rejected   map[string]int
	failed     int
	latencies  []time.Duration
	ids        map[int64]struct{}
	duplicates int
}

func newBenchStats() *BenchStats {
	return &BenchStats{rejected: map[string]int{}, ids: map[int64]struct{}{}}
}

func (s *BenchStats) record(res sendResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.total++
	s.latencies = append(s.latencies, res.latency)
	switch {
	case res.err != nil:
		s.failed++
	case res.reason != "":
		s.rejected[res.reason]++
	case res.code != 0:
		s.failed++
	default:
		s.succeeded++
		if _, dup := s.ids[res.messageID]; dup {
			s.duplicates++
		}
		s.ids[res.messageID] = struct{}{}
	}
}

type sendResult struct {
	code      int
	reason    string
	messageID int64
	latency   time.Duration
	err       error
}

type sendResponse struct {
	Code   int    `json:"code"`
	Reason string `json:"reason"`
	Data   struct {
		MessageID string `json:"message_id"`
	} `json:"data"`
}

var httpClient = &http.Client{Timeout: 8 * time.Second}

func sendMessage(url, token, groupID, content string) sendResult {
	body, _ := json.Marshal(map[string]string{"group_id": groupID, "content": content})
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return sendResult{err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	start := time.Now()
	resp, err := httpClient.Do(req)
	latency := time.Since(start)
	if err != nil {
		return sendResult{err: err, latency: latency}
	}
	defer resp.Body.Close()

	var r sendResponse
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return sendResult{err: err, latency: latency}
	}
	res := sendResult{code: r.Code, reason: r.Reason, latency: latency}
	if r.Code == 0 {
		res.messageID, res.err = strconv.ParseInt(r.Data.MessageID, 10, 64)
	}
	return res
}

func runMessageBench(base string, jwtSvc *jwt.JWTService, groupID string, concurrency, perGoroutine int) *BenchStats {
	fmt.Println("\n=== 消息写入并发测试开始 ===")
	fmt.Printf("目标: %s 群组: %s 并发: %d 每协程请求: %d\n", base, groupID, concurrency, perGoroutine)

	stats := newBenchStats()
	url := base + "/api/v1/messages"
	var wg sync.WaitGroup
	for i := 0; i < concurrency; i++ {
		token, err := jwtSvc.GenerateToken(uuid.New(), fmt.Sprintf("bench-%d", i), nil)
		if err != nil {
			fmt.Println("生成token失败:", err)
			os.Exit(1)
		}
		wg.Add(1)
		go func(id int, token string) {
			defer wg.Done()
			for j := 0; j < perGoroutine; j++ {
				stats.record(sendMessage(url, token, groupID, fmt.Sprintf("bench %d-%d", id, j)))
			}
		}(i, token)
	}
	wg.Wait()
	return stats
}

func (s *BenchStats) report(took time.Duration) {
	sort.Slice(s.latencies, func(i, j int) bool { return s.latencies[i] < s.latencies[j] })
	percentile := func(p float64) time.Duration {
		if len(s.latencies) == 0 {
			return 0
		}
		return s.latencies[int(float64(len(s.latencies)-1)*p)]
	}

	fmt.Println("\n=== 消息写入测试结果 ===")
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"指标", "值"})
	table.Append([]string{"耗时", took.String()})
	table.Append([]string{"总请求", strconv.Itoa(s.total)})
	table.Append([]string{"成功", strconv.Itoa(s.succeeded)})
	table.Append([]string{"失败", strconv.Itoa(s.failed)})
	for reason, n := range s.rejected {
		table.Append([]string{"拒绝 " + reason, strconv.Itoa(n)})
	}
	table.Append([]string{"重复ID", strconv.Itoa(s.duplicates)})
	table.Append([]string{"P50", percentile(0.5).String()})
	table.Append([]string{"P99", percentile(0.99).String()})
	if took > 0 {
		table.Append([]string{"QPS", fmt.Sprintf("%.2f", float64(s.succeeded)/took.Seconds())})
	}
	if len(s.ids) > 0 {
		var minID, maxID int64
		for id := range s.ids {
			if minID == 0 || id < minID {
				minID = id
			}
			maxID = max(maxID, id)
		}
		table.Append([]string{"ID时间跨度", idgen.Time(maxID).Sub(idgen.Time(minID)).String()})
	}
	table.Render()
}

// -------------------- 入口 --------------------

// 用法: bench [并发数] [每协程请求数] [群组ID] [监控秒数]
// 群组需提前创建并允许发言；服务端与本工具使用同一份配置（JWT密钥、雪花起始时间）
func main() {
	concurrency := intArg(1, 5)
	perGoroutine := intArg(2, 10)
	groupID := "1"
	if len(os.Args) > 3 {
		groupID = os.Args[3]
	}
	monitorSeconds := intArg(4, 20)

	cfg := config.LoadConfig()
	baseURL := os.Getenv("BENCH_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:" + cfg.Server.Port
	}

	fmt.Println("=== 消息服务并发与监控测试 ===")
	fmt.Printf("开始时间: %s\n", time.Now().Format("2006-01-02 15:04:05"))

	mon := NewMonitor(1 * time.Second)
	mon.Start()
	stopped := make(chan struct{})
	go func() {
		time.Sleep(time.Duration(monitorSeconds) * time.Second)
		mon.Stop()
		close(stopped)
	}()

	start := time.Now()
	stats := runMessageBench(baseURL, jwt.NewJWTService(cfg.JWT), groupID, concurrency, perGoroutine)
	stats.report(time.Since(start))

	<-stopped
	mon.GenerateReport()

	fmt.Println("\n=== 测试完成 ===")
	if stats.duplicates > 0 {
		os.Exit(1)
	}
}

func intArg(pos, def int) int {
	if len(os.Args) > pos {
		if v, err := strconv.Atoi(os.Args[pos]); err == nil && v > 0 {
			return v
		}
	}
	return def
}
