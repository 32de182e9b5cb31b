package evsel

import (
	"fmt"

	hdf5 "github.com/jmbenlloch/go-hdf5"
)

type CollisionHDF5 struct {
	pos_z      float32
	sel        uint8
	run_number int32
}

type TrackHDF5 struct {
	collision_id                   int32
	pt                             float32
	eta                            float32
	phi                            float32
	pt_reso                        float32
	flags                          uint32
	sign                           int16
	dca_xy                         float32
	dca_z                          float32
	length                         float32
	its_cluster_map                uint8
	its_chi2_ncl                   float32
	tpc_chi2_ncl                   float32
	trd_chi2                       float32
	tof_chi2                       float32
	has_its                        uint8
	has_tpc                        uint8
	has_trd                        uint8
	has_tof                        uint8
	tpc_ncls_found                 int16
	tpc_crossed_rows               int16
	tpc_crossed_rows_over_findable float32
	tpc_found_over_findable        float32
	tpc_fraction_shared            float32
	its_ncls                       uint8
	its_ncls_inner_barrel          uint8
	tpc_signal                     float32
	tof_minus_evtime               float32
}

type RecoParticleHDF5 struct {
	pt         float32
	eta        float32
	phi        float32
	pdg_code   int32
	production int32
}

type NonRecoParticleHDF5 struct {
	collision_id int32
	pt           float32
	eta          float32
	phi          float32
	pdg_code     int32
	production   int32
	vx           float32
	vy           float32
	vz           float32
}

type RunInfoHDF5 struct {
	run_number int32
}

func openFile(fname string) (*hdf5.File, error) {
	f, err := hdf5.CreateFile(fname, hdf5.F_ACC_TRUNC)
	if err != nil {
		return nil, &ErrOpenFile{Filename: fname, Err: err}
	}
	if configuration.Verbosity > 0 && logger != nil {
		message := fmt.Sprintf("Output file %s created (id=%d)", fname, f.ID())
		logger.Info(message, "writer")
	}
	return f, nil
}

func createGroup(file *hdf5.File, groupName string) (*hdf5.Group, error) {
	g, err := file.CreateGroup(groupName)
	if err != nil {
		return nil, &ErrCreateGroup{GroupName: groupName, Err: err}
	}
	return g, nil
}

func createTable(group *hdf5.Group, name string, datatype interface{}) (*hdf5.Dataset, error) {
	dims := []uint{0}
	unlimitedDims := -1 // H5S_UNLIMITED is -1L
	maxDims := []uint{uint(unlimitedDims)}
	fileSpace, err := hdf5.CreateSimpleDataspace(dims, maxDims)
	if err != nil {
		return nil, &ErrCreateTable{TableName: name, Err: err}
	}

	plist, err := hdf5.NewPropList(hdf5.P_DATASET_CREATE)
	if err != nil {
		return nil, &ErrCreateTable{TableName: name, Err: err}
	}
	chunks := []uint{32768}
	plist.SetChunk(chunks)
	plist.SetDeflate(4)

	dtype, err := hdf5.NewDatatypeFromValue(datatype)
	if err != nil {
		return nil, &ErrCreateTable{TableName: name, Err: err}
	}

	dset, err := group.CreateDatasetWith(name, dtype, fileSpace, plist)
	if err != nil {
		return nil, &ErrCreateTable{TableName: name, Err: err}
	}
	return dset, nil
}

// create2dArray makes an extendible [nEntries x nColumns] float64 array,
// used for the histogram dumps.
func create2dArray(group *hdf5.Group, name string, nColumns int) (*hdf5.Dataset, error) {
	dims := []uint{0, uint(nColumns)}
	unlimitedDims := -1 // H5S_UNLIMITED is -1L
	maxDims := []uint{uint(unlimitedDims), uint(nColumns)}
	fileSpace, err := hdf5.CreateSimpleDataspace(dims, maxDims)
	if err != nil {
		return nil, &ErrCreateTable{TableName: name, Err: err}
	}

	plist, err := hdf5.NewPropList(hdf5.P_DATASET_CREATE)
	if err != nil {
		return nil, &ErrCreateTable{TableName: name, Err: err}
	}
	chunks := []uint{1, uint(nColumns)}
	plist.SetChunk(chunks)
	plist.SetDeflate(4)

	dset, err := group.CreateDatasetWith(name, hdf5.T_NATIVE_DOUBLE, fileSpace, plist)
	if err != nil {
		return nil, &ErrCreateTable{TableName: name, Err: err}
	}
	return dset, nil
}

func writeEntryToTable[T any](dataset *hdf5.Dataset, data T) {
	array := []T{data}
	writeArrayToTable(dataset, &array)
}

func writeArrayToTable[T any](dataset *hdf5.Dataset, data *[]T) {
	length := uint(len(*data))
	if length == 0 {
		return
	}
	dims := []uint{length}
	dataspace, err := hdf5.CreateSimpleDataspace(dims, nil)
	if err != nil {
		panic(err)
	}

	// extend
	dimsGot, _, _ := dataset.Space().SimpleExtentDims()
	rowsInFile := dimsGot[0]
	newsize := []uint{rowsInFile + length}
	dataset.Resize(newsize)
	filespace := dataset.Space()

	start := []uint{rowsInFile}
	count := []uint{length}
	filespace.SelectHyperslab(start, nil, count, nil)

	err = dataset.WriteSubset(data, dataspace, filespace)
	if err != nil {
		panic(err)
	}

	dataspace.Close()
	filespace.Close()
}

func write2dArray(dataset *hdf5.Dataset, data *[]float64) {
	// extend by one row
	dimsGot, maxdimsGot, _ := dataset.Space().SimpleExtentDims()
	rowsInFile := dimsGot[0]
	nColumns := maxdimsGot[1]
	newsize := []uint{rowsInFile + 1, nColumns}
	dataset.Resize(newsize)
	filespace := dataset.Space()

	start := []uint{rowsInFile, 0}
	count := []uint{1, nColumns}
	filespace.SelectHyperslab(start, nil, count, nil)

	dataspace, err := hdf5.CreateSimpleDataspace(count, nil)
	if err != nil {
		panic(err)
	}

	err = dataset.WriteSubset(data, dataspace, filespace)
	if err != nil {
		panic(err)
	}

	dataspace.Close()
	filespace.Close()
}

func boolToUint8(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
