package strategy

import "fmt"

// Params holds the indicator windows and signal thresholds.
type Params struct {
	RSIPeriod       int     `yaml:"rsi_period"`
	SMAPeriod       int     `yaml:"sma_period"`
	BollingerPeriod int     `yaml:"bollinger_period"`
	BollingerStdDev float64 `yaml:"bollinger_stddev"`
	RSIOversold     float64 `yaml:"rsi_oversold"`
	RSIOverbought   float64 `yaml:"rsi_overbought"`
}

// DefaultParams returns RSI(14), SMA(20), Bollinger(20, 2) with 30/70 thresholds.
func DefaultParams() Params {
	return Params{
		RSIPeriod:       14,
		SMAPeriod:       20,
		BollingerPeriod: 20,
		BollingerStdDev: 2,
		RSIOversold:     30,
		RSIOverbought:   70,
	}
}

// WithDefaults returns DefaultParams for a zero Params. Otherwise only unset
// windows are filled; zero thresholds and a zero band width are kept as given.
func (p Params) WithDefaults() Params {
	d := DefaultParams()
	if p == (Params{}) {
		return d
	}
	if p.RSIPeriod == 0 {
		p.RSIPeriod = d.RSIPeriod
	}
	if p.SMAPeriod == 0 {
		p.SMAPeriod = d.SMAPeriod
	}
	if p.BollingerPeriod == 0 {
		p.BollingerPeriod = d.BollingerPeriod
	}
	return p
}

// MinSamples is the smallest series length for which every indicator has a value.
func (p Params) MinSamples() int {
	n := p.RSIPeriod
	if p.SMAPeriod > n {
		n = p.SMAPeriod
	}
	if p.BollingerPeriod > n {
		n = p.BollingerPeriod
	}
	return n
}

// Validate rejects parameter sets under which buy and sell could both fire
// or the bands could invert.
func (p Params) Validate() error {
	if p.RSIPeriod < 2 {
		return fmt.Errorf("rsi_period must be >= 2, got %d", p.RSIPeriod)
	}
	if p.SMAPeriod < 2 {
		return fmt.Errorf("sma_period must be >= 2, got %d", p.SMAPeriod)
	}
	if p.BollingerPeriod < 2 {
		return fmt.Errorf("bollinger_period must be >= 2, got %d", p.BollingerPeriod)
	}
	if p.BollingerStdDev < 0 {
		return fmt.Errorf("bollinger_stddev must be non-negative, got %g", p.BollingerStdDev)
	}
	if p.RSIOversold < 0 || p.RSIOverbought > 100 {
		return fmt.Errorf("rsi thresholds must lie in [0,100], got %g/%g", p.RSIOversold, p.RSIOverbought)
	}
	if p.RSIOversold > p.RSIOverbought {
		return fmt.Errorf("rsi_oversold (%g) must not exceed rsi_overbought (%g)", p.RSIOversold, p.RSIOverbought)
	}
	return nil
}
