// Package gpuoracle is an optional, GPU-accelerated alternate to
// internal/oracle: it batches the same bit-exact ZipCrypto key-schedule
// check across many candidates per dispatch using a Vulkan compute
// pipeline, for hosts with no CPU headroom to spare. It is selected by the
// driver only when Config.Backend == "vulkan"; CPU (internal/oracle) is
// always the default and the automatic fallback on any initialization
// failure here.
package gpuoracle

import (
	"errors"
	"fmt"
	"math"
	"os"
	"unsafe"

	vk "github.com/vulkan-go/vulkan"

	"github.com/vantasec/zcrack/internal/header"
)

const (
	// MaxPasswordLength bounds a single candidate uploaded to the GPU.
	MaxPasswordLength = 256
	// BatchSize is the number of candidates dispatched per compute call.
	BatchSize = 4096
)

// Backend owns the Vulkan instance-level resources shared by every Worker
// it creates, mirroring internal/oracle's stateless FastCheck but amortized
// across a whole compute pipeline instead of a per-call function.
type Backend struct {
	instance       vk.Instance
	physicalDevice vk.PhysicalDevice
	device         vk.Device
	queue          vk.Queue
	commandPool    vk.CommandPool
	descriptorPool vk.DescriptorPool

	computePipeline     vk.Pipeline
	pipelineLayout      vk.PipelineLayout
	descriptorSetLayout vk.DescriptorSetLayout

	memoryProperties vk.PhysicalDeviceMemoryProperties
}

// Worker is a per-goroutine handle bound to one CryptoHeader, batching
// FastCheck-equivalent evaluations on the GPU.
type Worker struct {
	backend   *Backend
	target    header.CryptoHeader
	batchSize int

	descriptorSet vk.DescriptorSet
	commandBuffer vk.CommandBuffer

	passwordLengthsBuffer vk.Buffer
	passwordLengthsMemory vk.DeviceMemory
	passwordDataBuffer    vk.Buffer
	passwordDataMemory    vk.DeviceMemory
	headerBuffer          vk.Buffer
	headerMemory          vk.DeviceMemory
	resultsBuffer         vk.Buffer
	resultsMemory         vk.DeviceMemory
}

// New initializes Vulkan and builds the compute pipeline used by every
// Worker. The returned error is always meant to trigger a CPU fallback in
// the caller, never to abort a run outright.
func New() (*Backend, error) {
	if err := vk.SetDefaultGetInstanceProcAddr(); err != nil {
		return nil, fmt.Errorf("gpuoracle: failed to set vulkan loader: %w", err)
	}
	if err := vk.Init(); err != nil {
		return nil, fmt.Errorf("gpuoracle: failed to initialize vulkan (check GPU drivers): %w", err)
	}

	b := &Backend{}
	if err := b.createInstance(); err != nil {
		return nil, fmt.Errorf("gpuoracle: instance: %w", err)
	}
	if err := b.selectPhysicalDevice(); err != nil {
		b.cleanup()
		return nil, fmt.Errorf("gpuoracle: device selection: %w", err)
	}
	if err := b.createDevice(); err != nil {
		b.cleanup()
		return nil, fmt.Errorf("gpuoracle: device: %w", err)
	}
	if err := b.createCommandPool(); err != nil {
		b.cleanup()
		return nil, fmt.Errorf("gpuoracle: command pool: %w", err)
	}
	if err := b.createComputePipeline(); err != nil {
		b.cleanup()
		return nil, fmt.Errorf("gpuoracle: compute pipeline: %w", err)
	}
	if err := b.createDescriptorPool(); err != nil {
		b.cleanup()
		return nil, fmt.Errorf("gpuoracle: descriptor pool: %w", err)
	}
	return b, nil
}

// NewWorker builds a GPU worker targeting target's crypto header.
func (b *Backend) NewWorker(target header.CryptoHeader) (*Worker, error) {
	w := &Worker{backend: b, target: target, batchSize: BatchSize}
	if err := w.createBuffers(); err != nil {
		return nil, fmt.Errorf("gpuoracle: worker buffers: %w", err)
	}
	if err := w.createDescriptorSet(); err != nil {
		w.Close()
		return nil, fmt.Errorf("gpuoracle: descriptor set: %w", err)
	}
	if err := w.createCommandBuffer(); err != nil {
		w.Close()
		return nil, fmt.Errorf("gpuoracle: command buffer: %w", err)
	}
	return w, nil
}

// BatchCheck uploads batch, dispatches the compute shader, and returns the
// index of the first matching candidate (or -1), mirroring
// internal/oracle.FastCheck's boolean result but amortized over a whole
// batch in a single dispatch.
func (w *Worker) BatchCheck(batch []string) (matchIdx int) {
	if len(batch) == 0 {
		return -1
	}
	n := len(batch)
	if n > w.batchSize {
		n = w.batchSize
		batch = batch[:n]
	}
	if err := w.uploadPasswordData(batch); err != nil {
		return -1
	}
	if err := w.dispatchCompute(n); err != nil {
		return -1
	}
	return w.downloadResults(n)
}

// Close releases the worker's GPU resources.
func (w *Worker) Close() { w.cleanup() }

// Close releases the backend's GPU resources.
func (b *Backend) Close() { b.cleanup() }

func (b *Backend) createInstance() error {
	appInfo := &vk.ApplicationInfo{
		SType:              vk.StructureTypeApplicationInfo,
		PApplicationName:   "zcrack",
		ApplicationVersion: vk.MakeVersion(1, 0, 0),
		PEngineName:        "zcrack-gpuoracle",
		EngineVersion:      vk.MakeVersion(1, 0, 0),
		ApiVersion:         vk.ApiVersion10,
	}
	createInfo := &vk.InstanceCreateInfo{
		SType:            vk.StructureTypeInstanceCreateInfo,
		PApplicationInfo: appInfo,
	}
	var instance vk.Instance
	if ret := vk.CreateInstance(createInfo, nil, &instance); ret != vk.Success {
		return fmt.Errorf("failed to create instance: %s", ret)
	}
	b.instance = instance
	return nil
}

func (b *Backend) selectPhysicalDevice() error {
	var deviceCount uint32
	if ret := vk.EnumeratePhysicalDevices(b.instance, &deviceCount, nil); ret != vk.Success {
		return fmt.Errorf("failed to enumerate devices: %s", ret)
	}
	if deviceCount == 0 {
		return errors.New("no vulkan devices found")
	}
	devices := make([]vk.PhysicalDevice, deviceCount)
	if ret := vk.EnumeratePhysicalDevices(b.instance, &deviceCount, devices); ret != vk.Success {
		return fmt.Errorf("failed to get devices: %s", ret)
	}
	for _, device := range devices {
		var queueFamilyCount uint32
		vk.GetPhysicalDeviceQueueFamilyProperties(device, &queueFamilyCount, nil)
		queueFamilies := make([]vk.QueueFamilyProperties, queueFamilyCount)
		vk.GetPhysicalDeviceQueueFamilyProperties(device, &queueFamilyCount, queueFamilies)
		for _, qf := range queueFamilies {
			qf.Deref()
			if (qf.QueueFlags & vk.QueueFlags(vk.QueueComputeBit)) != 0 {
				b.physicalDevice = device
				vk.GetPhysicalDeviceMemoryProperties(device, &b.memoryProperties)
				b.memoryProperties.Deref()
				return nil
			}
		}
	}
	return errors.New("no device with a compute queue found")
}

func (b *Backend) computeQueueFamilyIndex() uint32 {
	var queueFamilyCount uint32
	vk.GetPhysicalDeviceQueueFamilyProperties(b.physicalDevice, &queueFamilyCount, nil)
	queueFamilies := make([]vk.QueueFamilyProperties, queueFamilyCount)
	vk.GetPhysicalDeviceQueueFamilyProperties(b.physicalDevice, &queueFamilyCount, queueFamilies)
	for i, qf := range queueFamilies {
		qf.Deref()
		if (qf.QueueFlags & vk.QueueFlags(vk.QueueComputeBit)) != 0 {
			return uint32(i)
		}
	}
	return math.MaxUint32
}

func (b *Backend) createDevice() error {
	family := b.computeQueueFamilyIndex()
	if family == math.MaxUint32 {
		return errors.New("no compute queue family found")
	}
	priority := float32(1.0)
	queueCreateInfo := vk.DeviceQueueCreateInfo{
		SType:            vk.StructureTypeDeviceQueueCreateInfo,
		QueueFamilyIndex: family,
		QueueCount:       1,
		PQueuePriorities: []float32{priority},
	}
	deviceCreateInfo := &vk.DeviceCreateInfo{
		SType:                vk.StructureTypeDeviceCreateInfo,
		QueueCreateInfoCount: 1,
		PQueueCreateInfos:    []vk.DeviceQueueCreateInfo{queueCreateInfo},
	}
	var device vk.Device
	if ret := vk.CreateDevice(b.physicalDevice, deviceCreateInfo, nil, &device); ret != vk.Success {
		return fmt.Errorf("failed to create device: %s", ret)
	}
	b.device = device
	var queue vk.Queue
	vk.GetDeviceQueue(device, family, 0, &queue)
	b.queue = queue
	return nil
}

func (b *Backend) createCommandPool() error {
	family := b.computeQueueFamilyIndex()
	poolCreateInfo := &vk.CommandPoolCreateInfo{
		SType:            vk.StructureTypeCommandPoolCreateInfo,
		Flags:            vk.CommandPoolCreateFlags(vk.CommandPoolCreateResetCommandBufferBit),
		QueueFamilyIndex: family,
	}
	var pool vk.CommandPool
	if ret := vk.CreateCommandPool(b.device, poolCreateInfo, nil, &pool); ret != vk.Success {
		return fmt.Errorf("failed to create command pool: %s", ret)
	}
	b.commandPool = pool
	return nil
}

// createComputePipeline loads the precompiled key-schedule compute shader.
// The shader itself (shaders/zcrack_oracle.spv) implements exactly
// internal/keyschedule's Update/KeystreamByte over the uploaded header and
// password buffers; it is built and shipped out-of-band, as SPIR-V is
// binary and not Go source.
func (b *Backend) createComputePipeline() error {
	shaderCode, err := os.ReadFile("shaders/zcrack_oracle.spv")
	if err != nil {
		return fmt.Errorf("failed to read shader file: %w", err)
	}
	shaderCreateInfo := &vk.ShaderModuleCreateInfo{
		SType:    vk.StructureTypeShaderModuleCreateInfo,
		CodeSize: uint(len(shaderCode)),
		PCode:    bytesToUint32Slice(shaderCode),
	}
	var shaderModule vk.ShaderModule
	if ret := vk.CreateShaderModule(b.device, shaderCreateInfo, nil, &shaderModule); ret != vk.Success {
		return fmt.Errorf("failed to create shader module: %s", ret)
	}
	defer vk.DestroyShaderModule(b.device, shaderModule, nil)

	bindings := make([]vk.DescriptorSetLayoutBinding, 4)
	for i := range bindings {
		bindings[i] = vk.DescriptorSetLayoutBinding{
			Binding:         uint32(i),
			DescriptorType:  vk.DescriptorTypeStorageBuffer,
			DescriptorCount: 1,
			StageFlags:      vk.ShaderStageFlags(vk.ShaderStageComputeBit),
		}
	}
	layoutCreateInfo := &vk.DescriptorSetLayoutCreateInfo{
		SType:        vk.StructureTypeDescriptorSetLayoutCreateInfo,
		BindingCount: uint32(len(bindings)),
		PBindings:    bindings,
	}
	var setLayout vk.DescriptorSetLayout
	if ret := vk.CreateDescriptorSetLayout(b.device, layoutCreateInfo, nil, &setLayout); ret != vk.Success {
		return fmt.Errorf("failed to create descriptor set layout: %s", ret)
	}
	b.descriptorSetLayout = setLayout

	pipelineLayoutCreateInfo := &vk.PipelineLayoutCreateInfo{
		SType:          vk.StructureTypePipelineLayoutCreateInfo,
		SetLayoutCount: 1,
		PSetLayouts:    []vk.DescriptorSetLayout{setLayout},
	}
	var pipelineLayout vk.PipelineLayout
	if ret := vk.CreatePipelineLayout(b.device, pipelineLayoutCreateInfo, nil, &pipelineLayout); ret != vk.Success {
		return fmt.Errorf("failed to create pipeline layout: %s", ret)
	}
	b.pipelineLayout = pipelineLayout

	stageCreateInfo := vk.PipelineShaderStageCreateInfo{
		SType:  vk.StructureTypePipelineShaderStageCreateInfo,
		Stage:  vk.ShaderStageFlagBits(vk.ShaderStageComputeBit),
		Module: shaderModule,
		PName:  "main\x00",
	}
	pipelineCreateInfo := vk.ComputePipelineCreateInfo{
		SType:  vk.StructureTypeComputePipelineCreateInfo,
		Stage:  stageCreateInfo,
		Layout: pipelineLayout,
	}
	pipelines := make([]vk.Pipeline, 1)
	if ret := vk.CreateComputePipelines(b.device, vk.PipelineCache(vk.NullHandle), 1,
		[]vk.ComputePipelineCreateInfo{pipelineCreateInfo}, nil, pipelines); ret != vk.Success {
		return fmt.Errorf("failed to create compute pipeline: %s", ret)
	}
	b.computePipeline = pipelines[0]
	return nil
}

func (b *Backend) createDescriptorPool() error {
	poolSizes := []vk.DescriptorPoolSize{{
		Type:            vk.DescriptorTypeStorageBuffer,
		DescriptorCount: 1000,
	}}
	poolCreateInfo := &vk.DescriptorPoolCreateInfo{
		SType:         vk.StructureTypeDescriptorPoolCreateInfo,
		Flags:         vk.DescriptorPoolCreateFlags(vk.DescriptorPoolCreateFreeDescriptorSetBit),
		MaxSets:       1000,
		PoolSizeCount: uint32(len(poolSizes)),
		PPoolSizes:    poolSizes,
	}
	var pool vk.DescriptorPool
	if ret := vk.CreateDescriptorPool(b.device, poolCreateInfo, nil, &pool); ret != vk.Success {
		return fmt.Errorf("failed to create descriptor pool: %s", ret)
	}
	b.descriptorPool = pool
	return nil
}

func (w *Worker) createBuffers() error {
	lengthsSize := uint64(w.batchSize * 4)
	dataSize := uint64(w.batchSize * MaxPasswordLength)
	headerSize := uint64(32) // 12-byte crypto header + check byte + padding
	resultsSize := uint64(w.batchSize * 4)

	hostVisible := vk.MemoryPropertyFlags(vk.MemoryPropertyHostVisibleBit | vk.MemoryPropertyHostCoherentBit)
	if err := w.createBuffer(lengthsSize, vk.BufferUsageFlags(vk.BufferUsageStorageBufferBit), hostVisible,
		&w.passwordLengthsBuffer, &w.passwordLengthsMemory); err != nil {
		return fmt.Errorf("password lengths buffer: %w", err)
	}
	if err := w.createBuffer(dataSize, vk.BufferUsageFlags(vk.BufferUsageStorageBufferBit), hostVisible,
		&w.passwordDataBuffer, &w.passwordDataMemory); err != nil {
		return fmt.Errorf("password data buffer: %w", err)
	}
	if err := w.createBuffer(headerSize, vk.BufferUsageFlags(vk.BufferUsageStorageBufferBit), hostVisible,
		&w.headerBuffer, &w.headerMemory); err != nil {
		return fmt.Errorf("header buffer: %w", err)
	}
	if err := w.createBuffer(resultsSize, vk.BufferUsageFlags(vk.BufferUsageStorageBufferBit), hostVisible,
		&w.resultsBuffer, &w.resultsMemory); err != nil {
		return fmt.Errorf("results buffer: %w", err)
	}
	return w.uploadHeader()
}

func (w *Worker) createBuffer(size uint64, usage vk.BufferUsageFlags, properties vk.MemoryPropertyFlags, buffer *vk.Buffer, memory *vk.DeviceMemory) error {
	bufferCreateInfo := &vk.BufferCreateInfo{
		SType: vk.StructureTypeBufferCreateInfo,
		Size:  vk.DeviceSize(size),
		Usage: usage,
	}
	if ret := vk.CreateBuffer(w.backend.device, bufferCreateInfo, nil, buffer); ret != vk.Success {
		return fmt.Errorf("failed to create buffer: %s", ret)
	}
	var reqs vk.MemoryRequirements
	vk.GetBufferMemoryRequirements(w.backend.device, *buffer, &reqs)
	reqs.Deref()

	typeIdx := w.findMemoryType(reqs.MemoryTypeBits, properties)
	if typeIdx == math.MaxUint32 {
		return errors.New("no suitable memory type")
	}
	allocInfo := &vk.MemoryAllocateInfo{
		SType:           vk.StructureTypeMemoryAllocateInfo,
		AllocationSize:  reqs.Size,
		MemoryTypeIndex: typeIdx,
	}
	if ret := vk.AllocateMemory(w.backend.device, allocInfo, nil, memory); ret != vk.Success {
		return fmt.Errorf("failed to allocate memory: %s", ret)
	}
	if ret := vk.BindBufferMemory(w.backend.device, *buffer, *memory, 0); ret != vk.Success {
		return fmt.Errorf("failed to bind buffer memory: %s", ret)
	}
	return nil
}

func (w *Worker) findMemoryType(typeFilter uint32, properties vk.MemoryPropertyFlags) uint32 {
	w.backend.memoryProperties.Deref()
	for i := uint32(0); i < w.backend.memoryProperties.MemoryTypeCount; i++ {
		if (typeFilter&(1<<i)) != 0 && (w.backend.memoryProperties.MemoryTypes[i].PropertyFlags&properties) == properties {
			return i
		}
	}
	return math.MaxUint32
}

// uploadHeader packs the 12-byte crypto header and check byte into the
// worker's constant header buffer, uploaded once per worker since the
// target entry never changes across a run.
func (w *Worker) uploadHeader() error {
	var packed struct {
		Header    [3]uint32
		CheckByte uint32
		_         [3]uint32
	}
	for i := 0; i < 12; i += 4 {
		packed.Header[i/4] = uint32(w.target.Bytes[i]) |
			uint32(w.target.Bytes[i+1])<<8 |
			uint32(w.target.Bytes[i+2])<<16 |
			uint32(w.target.Bytes[i+3])<<24
	}
	packed.CheckByte = uint32(w.target.CheckByte)
	return w.writeToBuffer(w.headerMemory, unsafe.Pointer(&packed), unsafe.Sizeof(packed))
}

func (w *Worker) uploadPasswordData(batch []string) error {
	lengths := make([]uint32, w.batchSize)
	for i, pw := range batch {
		if i >= w.batchSize {
			break
		}
		lengths[i] = uint32(len(pw))
	}
	if err := w.writeToBuffer(w.passwordLengthsMemory, unsafe.Pointer(&lengths[0]), uintptr(len(lengths)*4)); err != nil {
		return err
	}

	words := make([]uint32, w.batchSize*MaxPasswordLength/4)
	offset := 0
	for i, pw := range batch {
		if i >= w.batchSize {
			break
		}
		b := []byte(pw)
		wordsNeeded := (len(b) + 3) / 4
		for j := 0; j < wordsNeeded; j++ {
			var word uint32
			for k := 0; k < 4 && j*4+k < len(b); k++ {
				word |= uint32(b[j*4+k]) << (k * 8)
			}
			words[offset] = word
			offset++
		}
	}
	return w.writeToBuffer(w.passwordDataMemory, unsafe.Pointer(&words[0]), uintptr(len(words)*4))
}

func (w *Worker) writeToBuffer(memory vk.DeviceMemory, data unsafe.Pointer, size uintptr) error {
	var mapped unsafe.Pointer
	if ret := vk.MapMemory(w.backend.device, memory, 0, vk.DeviceSize(vk.WholeSize), 0, &mapped); ret != vk.Success {
		return fmt.Errorf("failed to map memory: %s", ret)
	}
	defer vk.UnmapMemory(w.backend.device, memory)
	src := (*[1 << 30]byte)(data)[:size]
	vk.Memcopy(mapped, src)
	return nil
}

func (w *Worker) createDescriptorSet() error {
	allocInfo := &vk.DescriptorSetAllocateInfo{
		SType:              vk.StructureTypeDescriptorSetAllocateInfo,
		DescriptorPool:     w.backend.descriptorPool,
		DescriptorSetCount: 1,
		PSetLayouts:        []vk.DescriptorSetLayout{w.backend.descriptorSetLayout},
	}
	var set vk.DescriptorSet
	if ret := vk.AllocateDescriptorSets(w.backend.device, allocInfo, &set); ret != vk.Success {
		return fmt.Errorf("failed to allocate descriptor set: %s", ret)
	}
	w.descriptorSet = set

	buffers := []vk.Buffer{w.passwordLengthsBuffer, w.passwordDataBuffer, w.headerBuffer, w.resultsBuffer}
	writes := make([]vk.WriteDescriptorSet, len(buffers))
	for i, buf := range buffers {
		writes[i] = vk.WriteDescriptorSet{
			SType:           vk.StructureTypeWriteDescriptorSet,
			DstSet:          w.descriptorSet,
			DstBinding:      uint32(i),
			DstArrayElement: 0,
			DescriptorType:  vk.DescriptorTypeStorageBuffer,
			DescriptorCount: 1,
			PBufferInfo: []vk.DescriptorBufferInfo{{
				Buffer: buf,
				Offset: 0,
				Range:  vk.DeviceSize(vk.WholeSize),
			}},
		}
	}
	vk.UpdateDescriptorSets(w.backend.device, uint32(len(writes)), writes, 0, nil)
	return nil
}

func (w *Worker) createCommandBuffer() error {
	allocInfo := &vk.CommandBufferAllocateInfo{
		SType:              vk.StructureTypeCommandBufferAllocateInfo,
		CommandPool:        w.backend.commandPool,
		Level:              vk.CommandBufferLevelPrimary,
		CommandBufferCount: 1,
	}
	buffers := make([]vk.CommandBuffer, 1)
	if ret := vk.AllocateCommandBuffers(w.backend.device, allocInfo, buffers); ret != vk.Success {
		return fmt.Errorf("failed to allocate command buffer: %s", ret)
	}
	w.commandBuffer = buffers[0]
	return nil
}

func (w *Worker) dispatchCompute(batchSize int) error {
	beginInfo := &vk.CommandBufferBeginInfo{
		SType: vk.StructureTypeCommandBufferBeginInfo,
		Flags: vk.CommandBufferUsageFlags(vk.CommandBufferUsageOneTimeSubmitBit),
	}
	if ret := vk.BeginCommandBuffer(w.commandBuffer, beginInfo); ret != vk.Success {
		return fmt.Errorf("failed to begin command buffer: %s", ret)
	}
	vk.CmdBindPipeline(w.commandBuffer, vk.PipelineBindPointCompute, w.backend.computePipeline)
	vk.CmdBindDescriptorSets(w.commandBuffer, vk.PipelineBindPointCompute, w.backend.pipelineLayout, 0, 1,
		[]vk.DescriptorSet{w.descriptorSet}, 0, nil)

	groups := uint32((batchSize + 63) / 64)
	vk.CmdDispatch(w.commandBuffer, groups, 1, 1)

	if ret := vk.EndCommandBuffer(w.commandBuffer); ret != vk.Success {
		return fmt.Errorf("failed to end command buffer: %s", ret)
	}
	submitInfo := vk.SubmitInfo{
		SType:              vk.StructureTypeSubmitInfo,
		CommandBufferCount: 1,
		PCommandBuffers:    []vk.CommandBuffer{w.commandBuffer},
	}
	if ret := vk.QueueSubmit(w.backend.queue, 1, []vk.SubmitInfo{submitInfo}, vk.NullFence); ret != vk.Success {
		return fmt.Errorf("failed to submit command buffer: %s", ret)
	}
	if ret := vk.QueueWaitIdle(w.backend.queue); ret != vk.Success {
		return fmt.Errorf("failed to wait for queue: %s", ret)
	}
	return nil
}

func (w *Worker) downloadResults(batchSize int) int {
	var mapped unsafe.Pointer
	if ret := vk.MapMemory(w.backend.device, w.resultsMemory, 0, vk.DeviceSize(vk.WholeSize), 0, &mapped); ret != vk.Success {
		return -1
	}
	defer vk.UnmapMemory(w.backend.device, w.resultsMemory)
	results := (*[BatchSize]uint32)(mapped)[:batchSize]
	for i, r := range results {
		if r != 0 {
			return i
		}
	}
	return -1
}

func (w *Worker) cleanup() {
	if w.passwordLengthsBuffer != vk.Buffer(vk.NullHandle) {
		vk.DestroyBuffer(w.backend.device, w.passwordLengthsBuffer, nil)
	}
	if w.passwordLengthsMemory != vk.DeviceMemory(vk.NullHandle) {
		vk.FreeMemory(w.backend.device, w.passwordLengthsMemory, nil)
	}
	if w.passwordDataBuffer != vk.Buffer(vk.NullHandle) {
		vk.DestroyBuffer(w.backend.device, w.passwordDataBuffer, nil)
	}
	if w.passwordDataMemory != vk.DeviceMemory(vk.NullHandle) {
		vk.FreeMemory(w.backend.device, w.passwordDataMemory, nil)
	}
	if w.headerBuffer != vk.Buffer(vk.NullHandle) {
		vk.DestroyBuffer(w.backend.device, w.headerBuffer, nil)
	}
	if w.headerMemory != vk.DeviceMemory(vk.NullHandle) {
		vk.FreeMemory(w.backend.device, w.headerMemory, nil)
	}
	if w.resultsBuffer != vk.Buffer(vk.NullHandle) {
		vk.DestroyBuffer(w.backend.device, w.resultsBuffer, nil)
	}
	if w.resultsMemory != vk.DeviceMemory(vk.NullHandle) {
		vk.FreeMemory(w.backend.device, w.resultsMemory, nil)
	}
	if w.descriptorSet != vk.DescriptorSet(vk.NullHandle) {
		vk.FreeDescriptorSets(w.backend.device, w.backend.descriptorPool, 1, &w.descriptorSet)
	}
	if w.commandBuffer != vk.CommandBuffer(vk.NullHandle) {
		vk.FreeCommandBuffers(w.backend.device, w.backend.commandPool, 1, []vk.CommandBuffer{w.commandBuffer})
	}
}

func (b *Backend) cleanup() {
	if b.descriptorPool != vk.DescriptorPool(vk.NullHandle) {
		vk.DestroyDescriptorPool(b.device, b.descriptorPool, nil)
	}
	if b.computePipeline != vk.Pipeline(vk.NullHandle) {
		vk.DestroyPipeline(b.device, b.computePipeline, nil)
	}
	if b.pipelineLayout != vk.PipelineLayout(vk.NullHandle) {
		vk.DestroyPipelineLayout(b.device, b.pipelineLayout, nil)
	}
	if b.descriptorSetLayout != vk.DescriptorSetLayout(vk.NullHandle) {
		vk.DestroyDescriptorSetLayout(b.device, b.descriptorSetLayout, nil)
	}
	if b.commandPool != vk.CommandPool(vk.NullHandle) {
		vk.DestroyCommandPool(b.device, b.commandPool, nil)
	}
	if b.device != vk.Device(vk.NullHandle) {
		vk.DestroyDevice(b.device, nil)
	}
	if b.instance != vk.Instance(vk.NullHandle) {
		vk.DestroyInstance(b.instance, nil)
	}
}

func bytesToUint32Slice(data []byte) []uint32 {
	if len(data)%4 != 0 {
		data = append(data, make([]byte, 4-len(data)%4)...)
	}
	return (*[1 << 30]uint32)(unsafe.Pointer(&data[0]))[: len(data)/4 : len(data)/4]
}
