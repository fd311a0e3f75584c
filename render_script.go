// render_script.go - Lua-scripted seamless-loop scenes

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionLoop
License: GPLv3 or later
*/

package main

import (
	"fmt"
	"math"

	lua "github.com/yuin/gopher-lua"
)

/*
A scene script defines a global function

  function frame(phase)
    return {
      xfreq = 16, yfreq = 9, dfreq = 24, rfreq = 12,
      xphase = phase, yphase = -phase,
      dphase = 2 * phase, rphase = -phase,
      hue = 0,
    }
  end

called once per captured frame with phase in [0, 2*pi). The returned table
parameterises the plasma field; any key the script omits keeps the built-in
scene's value. Because the only time input is the loop phase, a script that
uses phase periodically yields a seamless loop for free.
*/

// ScriptRenderer drives the plasma field from a Lua scene script. Script
// load failures are fatal at construction; a runtime error inside frame()
// is held and reported on the next ReadPixels so the pipeline can treat it
// like any other transient capture fault.
type ScriptRenderer struct {
	width, height int
	loopDuration  float64
	frame         *Frame

	state   *lua.LState
	frameFn *lua.LFunction
	callErr error

	params plasmaParams
}

type plasmaParams struct {
	xfreq, yfreq, dfreq, rfreq     float64
	xphase, yphase, dphase, rphase float64
	hue                            float64
}

func defaultPlasmaParams(phase float64) plasmaParams {
	return plasmaParams{
		xfreq: 16, yfreq: 9, dfreq: 24, rfreq: 12,
		xphase: phase, yphase: -phase, dphase: 2 * phase, rphase: -phase,
	}
}

// NewScriptRenderer loads the scene script and verifies it defines frame().
func NewScriptRenderer(scriptPath string, width, height int, loopDuration float64) (*ScriptRenderer, error) {
	if loopDuration <= 0 {
		loopDuration = 1
	}
	state := lua.NewState()
	if err := state.DoFile(scriptPath); err != nil {
		state.Close()
		return nil, fmt.Errorf("scene script %s: %w", scriptPath, err)
	}
	fn, ok := state.GetGlobal("frame").(*lua.LFunction)
	if !ok {
		state.Close()
		return nil, fmt.Errorf("scene script %s: no frame() function defined", scriptPath)
	}
	return &ScriptRenderer{
		width:        width,
		height:       height,
		loopDuration: loopDuration,
		frame:        NewFrame(width, height),
		state:        state,
		frameFn:      fn,
	}, nil
}

// Close releases the Lua state.
func (r *ScriptRenderer) Close() {
	if r.state != nil {
		r.state.Close()
		r.state = nil
	}
}

// Advance calls frame(phase) and renders the field with the returned
// parameters.
func (r *ScriptRenderer) Advance(t float64) {
	phase := 2 * math.Pi * math.Mod(t, r.loopDuration) / r.loopDuration
	r.params = defaultPlasmaParams(phase)
	r.callErr = nil

	if err := r.state.CallByParam(lua.P{
		Fn:      r.frameFn,
		NRet:    1,
		Protect: true,
	}, lua.LNumber(phase)); err != nil {
		r.callErr = fmt.Errorf("scene frame(%.4f): %w", phase, err)
		return
	}
	ret := r.state.Get(-1)
	r.state.Pop(1)
	if tbl, ok := ret.(*lua.LTable); ok {
		r.applyTable(tbl)
	}

	r.render()
}

func (r *ScriptRenderer) applyTable(tbl *lua.LTable) {
	get := func(key string, dst *float64) {
		if n, ok := tbl.RawGetString(key).(lua.LNumber); ok {
			*dst = float64(n)
		}
	}
	get("xfreq", &r.params.xfreq)
	get("yfreq", &r.params.yfreq)
	get("dfreq", &r.params.dfreq)
	get("rfreq", &r.params.rfreq)
	get("xphase", &r.params.xphase)
	get("yphase", &r.params.yphase)
	get("dphase", &r.params.dphase)
	get("rphase", &r.params.rphase)
	get("hue", &r.params.hue)
}

func (r *ScriptRenderer) render() {
	p := r.params
	// Zero frequencies would divide out the spatial terms entirely.
	if p.xfreq == 0 {
		p.xfreq = 16
	}
	if p.yfreq == 0 {
		p.yfreq = 9
	}
	if p.dfreq == 0 {
		p.dfreq = 24
	}
	if p.rfreq == 0 {
		p.rfreq = 12
	}
	cx := float64(r.width) / 2
	cy := float64(r.height) / 2

	for y := 0; y < r.height; y++ {
		fy := float64(y)
		for x := 0; x < r.width; x++ {
			fx := float64(x)
			v := math.Sin(fx/p.xfreq+p.xphase) +
				math.Sin(fy/p.yfreq+p.yphase) +
				math.Sin((fx+fy)/p.dfreq+p.dphase) +
				math.Sin(math.Hypot(fx-cx, fy-cy)/p.rfreq+p.rphase)
			v /= 4

			i := (y*r.width + x) * 4
			r.frame.Pix[i] = byte((math.Sin(v*math.Pi+p.hue) + 1) * 127.5)
			r.frame.Pix[i+1] = byte((math.Sin(v*math.Pi+p.hue+2*math.Pi/3) + 1) * 127.5)
			r.frame.Pix[i+2] = byte((math.Sin(v*math.Pi+p.hue+4*math.Pi/3) + 1) * 127.5)
			r.frame.Pix[i+3] = 0xFF
		}
	}
}

// ReadPixels copies out the requested region, or reports a script error from
// the preceding Advance.
func (r *ScriptRenderer) ReadPixels(x, y, width, height int) ([]byte, error) {
	if r.callErr != nil {
		return nil, r.callErr
	}
	if x < 0 || y < 0 || width <= 0 || height <= 0 ||
		x+width > r.width || y+height > r.height {
		return nil, fmt.Errorf("read region %d,%d %dx%d outside %dx%d surface",
			x, y, width, height, r.width, r.height)
	}
	out := make([]byte, width*height*4)
	for row := 0; row < height; row++ {
		src := ((y+row)*r.width + x) * 4
		copy(out[row*width*4:(row+1)*width*4], r.frame.Pix[src:src+width*4])
	}
	return out, nil
}
