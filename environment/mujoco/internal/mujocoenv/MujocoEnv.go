// Package mujocoenv implements the interface between the MuJoCo
// physics simulator and environments in this module. The package wraps
// a single simulated model and its data, advances the dynamics given
// control signals, and answers the state queries that tasks need:
// joint positions and velocities, the full state vector, external
// contact forces, and named-body pose and velocity.
package mujocoenv

// * Leaving the cgo directives in so VSCode doesn't complain, even though
// * CGO_CFLAGS and CGO_LDFLAGS have been set.

// #cgo CFLAGS: -O2 -I/home/samuel/.mujoco/mujoco200_linux/include -mavx -pthread
// #cgo LDFLAGS: -L/home/samuel/.mujoco/mujoco200_linux/bin -lmujoco200nogl
// #include "mujoco.h"
// #include <stdio.h>
// #include <stdlib.h>
//
// void setQPos(mjData* data, double* positions, int len) {
// for (int i = 0; i < len; i++) {
// 		data->qpos[i] = positions[i];
// 	}
// }
//
// void setQVel(mjData* data, double* velocities, int len) {
// 	for (int i = 0; i < len; i++){
// 		data->qvel[i] = velocities[i];
// 	}
// }
import "C"

import (
	"fmt"
	"os"
	"path"
	"unsafe"

	"gonum.org/v1/gonum/mat"

	"github.com/samuelfneumann/goant/environment"
)

func init() {
	// Activate MuJoCo
	mjKey := C.CString("/home/samuel/.mujoco/mjkey.txt")
	defer C.free(unsafe.Pointer(mjKey))
	C.mj_activate(mjKey)
}

// MujocoEnv wraps one MuJoCo model and its mutable simulation data.
// A MujocoEnv is exclusively owned by the environment that creates it
// and lives for the life of that environment; task swaps never
// reconstruct it.
type MujocoEnv struct {
	FrameSkip int
	Model     *C.mjModel
	Data      *C.mjData
	Seed      uint64
	Discount  float64

	InitQPos *mat.VecDense
	InitQVel *mat.VecDense

	Nu, Nv, Nq, Na, Nbody int
}

// NewMujocoEnv loads the model description in xmlPath and returns a
// MujocoEnv simulating it. Relative paths are resolved against the
// module's environment/mujoco/assets directory.
func NewMujocoEnv(xmlPath string, frameSkip int, seed uint64,
	discount float64) (*MujocoEnv, error) {
	var fullPath string
	if xmlPath[0] == '/' || xmlPath[0:2] == "./" {
		fullPath = xmlPath
	} else {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("newMujocoEnv: could not get current "+
				"directory for finding mujoco/assets/ dir: %v", err)
		}
		fullPath = path.Join(wd, "environment/mujoco/assets", xmlPath)
	}

	if _, err := os.Stat(fullPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("newMujocoEnv: no such path '%v'", fullPath)
	}

	model, data, err := loadXML(fullPath)
	if err != nil {
		return nil, fmt.Errorf("newMujocoEnv: could not load XML: %v", err)
	}

	nq := int(model.nq)
	nu := int(model.nu)
	nv := int(model.nv)
	na := int(model.na)
	nbody := int(model.nbody)

	initQPos := F64SliceC2Go(data.qpos, nq)
	initQVel := F64SliceC2Go(data.qvel, nv)

	// Seed the simulator
	C.srand(C.uint(seed))

	return &MujocoEnv{
		FrameSkip: frameSkip,
		Model:     model,
		Data:      data,
		Seed:      seed,
		Discount:  discount,
		Nu:        nu,
		Nv:        nv,
		Nq:        nq,
		Na:        na,
		Nbody:     nbody,
		InitQPos:  mat.NewVecDense(len(initQPos), initQPos),
		InitQVel:  mat.NewVecDense(len(initQVel), initQVel),
	}, nil
}

// Reset resets the simulation data to the model's canonical initial
// pose. Concrete environments should have a Reset which calls this
// Reset before perturbing the starting state.
func (m *MujocoEnv) Reset() {
	C.mj_resetData(m.Model, m.Data)
}

// QPos returns a copy of the generalized joint positions
func (m *MujocoEnv) QPos() []float64 {
	return F64SliceC2Go(m.Data.qpos, m.Nq)
}

// QVel returns a copy of the generalized joint velocities
func (m *MujocoEnv) QVel() []float64 {
	return F64SliceC2Go(m.Data.qvel, m.Nv)
}

// StateVector returns the full underlying simulator state
// [qpos, qvel] as a single vector
func (m *MujocoEnv) StateVector() *mat.VecDense {
	return StateVector(m.Data, m.Nq, m.Nv)
}

// SetState sets the joint positions and velocities of the simulation
func (m *MujocoEnv) SetState(qpos, qvel []float64) error {
	if len(qpos) != m.Nq {
		return fmt.Errorf("setState: invalid position dimensions \n\t"+
			"have(%v) \n\twant(%v)", len(qpos), m.Nq)
	}
	if len(qvel) != m.Nv {
		return fmt.Errorf("setState: invalid velocity dimensions \n\t"+
			"have(%v) \n\twant(%v)", len(qvel), m.Nv)
	}

	C.setQPos(m.Data, (*C.double)(unsafe.Pointer(&qpos[0])), C.int(len(qpos)))
	C.setQVel(m.Data, (*C.double)(unsafe.Pointer(&qvel[0])), C.int(len(qvel)))

	C.mj_forward(m.Model, m.Data)
	return nil
}

// Dt returns the effective timestep of one environmental step
func (m *MujocoEnv) Dt() float64 {
	return float64(m.Model.opt.timestep) * float64(m.FrameSkip)
}

// DoSimulation advances the dynamics for nFrames frames under the
// argument control signal
func (m *MujocoEnv) DoSimulation(control *mat.VecDense, nFrames int) error {
	if control.Len() != m.Nu {
		return fmt.Errorf("doSimulation: invalid control dimensions \n\t"+
			"have(%v) \n\twant(%v)", control.Len(), m.Nu)
	}

	action := make([]float64, control.Len())
	copy(action, control.RawVector().Data)
	m.Data.ctrl = (*C.mjtNum)(unsafe.Pointer(&action[0]))

	for i := 0; i < nFrames; i++ {
		C.mj_step(m.Model, m.Data)
	}
	return nil
}

// BodyID returns the simulator's index for a named body
func (m *MujocoEnv) BodyID(name string) (int, error) {
	cName := C.CString(name)
	defer C.free(unsafe.Pointer(cName))

	id := int(C.mj_name2id(m.Model, C.mjOBJ_BODY, cName))
	if id < 0 {
		return 0, fmt.Errorf("bodyID: no body named '%v'", name)
	}
	return id, nil
}

// BodyComPos returns the centre of mass position of a named body in
// global coordinates
func (m *MujocoEnv) BodyComPos(name string) (*mat.VecDense, error) {
	id, err := m.BodyID(name)
	if err != nil {
		return nil, fmt.Errorf("bodyComPos: %v", err)
	}

	xipos := F64SliceC2Go(m.Data.xipos, 3*m.Nbody)
	return mat.NewVecDense(3, xipos[3*id:3*id+3]), nil
}

// BodyComVel returns the centre of mass linear velocity of a named
// body
func (m *MujocoEnv) BodyComVel(name string) (*mat.VecDense, error) {
	id, err := m.BodyID(name)
	if err != nil {
		return nil, fmt.Errorf("bodyComVel: %v", err)
	}

	// cvel stores a 6D (angular, linear) velocity per body
	cvel := F64SliceC2Go(m.Data.cvel, 6*m.Nbody)
	return mat.NewVecDense(3, cvel[6*id+3:6*id+6]), nil
}

// BodyXMat returns the rotation matrix of a named body's frame in
// global coordinates
func (m *MujocoEnv) BodyXMat(name string) (*mat.Dense, error) {
	id, err := m.BodyID(name)
	if err != nil {
		return nil, fmt.Errorf("bodyXMat: %v", err)
	}

	xmat := F64SliceC2Go(m.Data.xmat, 9*m.Nbody)
	return mat.NewDense(3, 3, xmat[9*id:9*id+9]), nil
}

// ContactForces returns the external contact forces acting on each
// body as an (Nbody x 6) matrix of (torque, force) rows
func (m *MujocoEnv) ContactForces() *mat.Dense {
	return mat.NewDense(m.Nbody, 6, F64SliceC2Go(m.Data.cfrc_ext, 6*m.Nbody))
}

// DiscountSpec returns the discounting specification of the simulation
func (m *MujocoEnv) DiscountSpec() environment.Spec {
	bounds := mat.NewVecDense(1, []float64{m.Discount})

	return environment.NewSpec(mat.NewVecDense(1, nil), environment.Discount,
		bounds, bounds, environment.Continuous)
}

// ActionSpec returns the action specification of the simulation,
// with bounds read from the model's actuator control ranges
func (m *MujocoEnv) ActionSpec() environment.Spec {
	bounds := F64SliceC2Go(m.Model.actuator_ctrlrange, m.Nu*2)

	low := make([]float64, m.Nu)
	high := make([]float64, m.Nu)
	for i := 0; i < m.Nu; i++ {
		low[i] = bounds[2*i]
		high[i] = bounds[2*i+1]
	}

	lowVec := mat.NewVecDense(m.Nu, low)
	highVec := mat.NewVecDense(m.Nu, high)
	shape := mat.NewVecDense(m.Nu, nil)

	return environment.NewSpec(shape, environment.Action, lowVec, highVec,
		environment.Continuous)
}

// Close frees the resources held by the simulator
func (m *MujocoEnv) Close() {
	C.mj_deleteModel(m.Model)
	C.mj_deleteData(m.Data)
}
