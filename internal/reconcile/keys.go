package reconcile

// 复合键一律用结构体比较，避免字符串拼接时分隔符冲突

type idStyleKey struct {
	ID    string
	Style string
}

type idGroupKey struct {
	ID        string
	GroupCode string
}

type idGroupTitleKey struct {
	ID        string
	GroupCode string
	JobTitle  string
}

// mean 增量均值
type mean struct {
	sum   float64
	count int
}

func (m *mean) add(v float64) {
	m.sum += v
	m.count++
}

func (m mean) value() (float64, bool) {
	if m.count == 0 {
		return 0, false
	}
	return m.sum / float64(m.count), true
}

// averages 按键聚合的均值表
type averages[K comparable] map[K]*mean

func (a averages[K]) add(k K, v *float64) {
	if v == nil {
		return
	}
	m, ok := a[k]
	if !ok {
		m = &mean{}
		a[k] = m
	}
	m.add(*v)
}

func (a averages[K]) lookup(k K) *float64 {
	m, ok := a[k]
	if !ok {
		return nil
	}
	v, ok := m.value()
	if !ok {
		return nil
	}
	return &v
}

// firstValues 同键多值时保留第一次出现的值
type firstValues[K comparable] map[K]string

func (f firstValues[K]) add(k K, v string) {
	if v == "" {
		return
	}
	if _, ok := f[k]; ok {
		return
	}
	f[k] = v
}
