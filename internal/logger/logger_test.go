package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"debug":   DEBUG,
		"INFO":    INFO,
		"warning": WARN,
		"error":   ERROR,
		"bogus":   INFO,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) 应为 %s, 实际为 %s", in, want, got)
		}
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := New()
	l.SetWriter(&buf)
	l.SetLevel(INFO)

	l.Debug("调试信息 %d", 1)
	l.Info("普通信息 %d", 2)

	out := buf.String()
	if strings.Contains(out, "调试信息") {
		t.Errorf("INFO 级别下不应输出 DEBUG 日志: %s", out)
	}
	if !strings.Contains(out, "普通信息 2") {
		t.Errorf("应输出 INFO 日志: %s", out)
	}

	l.SetLevel(DEBUG)
	l.Debug("再次调试")
	if !strings.Contains(buf.String(), "再次调试") {
		t.Error("DEBUG 级别下应输出 DEBUG 日志")
	}
}

func TestSetEnabled(t *testing.T) {
	var buf bytes.Buffer
	l := New()
	l.SetWriter(&buf)
	l.SetEnabled(false)

	l.Error("不应出现")
	if buf.Len() != 0 {
		t.Errorf("禁用后不应有输出, 实际为 %q", buf.String())
	}
}

func TestLogEventToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "permbroker.log")

	l := New()
	l.SetConsole(false)
	if err := l.SetFile(true, path); err != nil {
		t.Fatalf("打开日志文件失败: %v", err)
	}

	l.LogEvent("PERM", true, 1.5, "microphone check")
	l.LogEvent("PERM", false, 2.0, "audio request")
	if err := l.Close(); err != nil {
		t.Fatalf("关闭日志失败: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("读取日志文件失败: %v", err)
	}

	out := string(data)
	for _, want := range []string{`"category":"PERM"`, `"status":"OK"`, `"status":"NG"`, `"msg":"audio request"`} {
		if !strings.Contains(out, want) {
			t.Errorf("日志文件应包含 %s, 实际为 %s", want, out)
		}
	}
	t.Logf("日志内容:\n%s", out)
}

func TestSetFileInvalidPath(t *testing.T) {
	l := New()
	err := l.SetFile(true, filepath.Join(t.TempDir(), "missing", "dir", "x.log"))
	if err == nil {
		t.Error("无效路径应返回错误")
	}
}

func TestConsoleAndFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "permbroker.log")

	var buf bytes.Buffer
	l := New()
	l.SetWriter(&buf)
	if err := l.SetFile(true, path); err != nil {
		t.Fatalf("打开日志文件失败: %v", err)
	}
	l.LogEvent("PERM", true, 0.5, "screen-recording check")
	if err := l.Close(); err != nil {
		t.Fatalf("关闭日志失败: %v", err)
	}

	if !strings.Contains(buf.String(), "screen-recording check") {
		t.Errorf("控制台应有输出, 实际为 %q", buf.String())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("读取日志文件失败: %v", err)
	}
	if !strings.Contains(string(data), `"msg":"screen-recording check"`) {
		t.Errorf("日志文件应有输出, 实际为 %s", data)
	}
}

func TestSetFileSwitch(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.log")
	second := filepath.Join(dir, "second.log")

	l := New()
	l.SetConsole(false)
	if err := l.SetFile(true, first); err != nil {
		t.Fatalf("打开日志文件失败: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				l.Info("并发写入 %d-%d", n, j)
			}
		}(i)
	}
	if err := l.SetFile(true, second); err != nil {
		t.Fatalf("切换日志文件失败: %v", err)
	}
	wg.Wait()

	l.Info("切换之后")
	if err := l.Close(); err != nil {
		t.Fatalf("关闭日志失败: %v", err)
	}

	firstData, _ := os.ReadFile(first)
	secondData, err := os.ReadFile(second)
	if err != nil {
		t.Fatalf("读取日志文件失败: %v", err)
	}
	if strings.Contains(string(firstData), "切换之后") {
		t.Error("切换后的日志不应写入旧文件")
	}
	if !strings.Contains(string(secondData), "切换之后") {
		t.Error("切换后的日志应写入新文件")
	}

	// 每条并发日志都应落在其中一个文件里
	total := strings.Count(string(firstData), "并发写入") + strings.Count(string(secondData), "并发写入")
	if total != 8*50 {
		t.Errorf("日志条数应为 %d, 实际为 %d", 8*50, total)
	}
}

func TestSetFileFailureKeepsOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "permbroker.log")

	l := New()
	l.SetConsole(false)
	if err := l.SetFile(true, path); err != nil {
		t.Fatalf("打开日志文件失败: %v", err)
	}
	if err := l.SetFile(true, filepath.Join(t.TempDir(), "missing", "x.log")); err == nil {
		t.Fatal("无效路径应返回错误")
	}
	l.Info("仍然写入")
	l.Close()

	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), "仍然写入") {
		t.Errorf("打开失败后应保留原日志文件, 实际为 %s", data)
	}
}
