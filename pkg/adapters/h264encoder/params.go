package h264encoder

const (
	nalIDR = 5
	nalSPS = 7
	nalPPS = 8

	profileBaseline = 66

	// constraint_set0_flag and constraint_set1_flag
	baselineConstraints = 0xC0

	mbTypeIPCM = 25
	sliceTypeI = 7
	initialQP  = 26
)

// maxFrameMacroblocks is MaxFS of level 5.1, the highest level written.
const maxFrameMacroblocks = 36864

// geometry describes the macroblock grid covering a picture. Sizes are even
// because frame cropping counts in chroma samples.
type geometry struct {
	width, height int
	mbW, mbH      int
}

func newGeometry(width, height int) geometry {
	return geometry{
		width:  width,
		height: height,
		mbW:    (width + 15) / 16,
		mbH:    (height + 15) / 16,
	}
}

func (g geometry) macroblocks() int {
	return g.mbW * g.mbH
}

// level picks the lowest of 3.1, 4.1 and 5.1 whose frame size limit holds
// the picture.
func (g geometry) level() uint32 {
	switch mbs := g.macroblocks(); {
	case mbs <= 3600:
		return 31
	case mbs <= 8192:
		return 41
	default:
		return 51
	}
}

// appendSPS appends a baseline sequence parameter set NAL unit.
func appendSPS(dst []byte, bw *bitWriter, g geometry) []byte {
	bw.reset()

	bw.writeBits(profileBaseline, 8)
	bw.writeBits(baselineConstraints, 8)
	bw.writeBits(g.level(), 8)
	bw.writeUE(0) // seq_parameter_set_id

	bw.writeUE(0) // log2_max_frame_num_minus4
	bw.writeUE(2) // pic_order_cnt_type
	bw.writeUE(1) // max_num_ref_frames
	bw.writeBit(0)

	bw.writeUE(uint32(g.mbW - 1))
	bw.writeUE(uint32(g.mbH - 1))
	bw.writeBit(1) // frame_mbs_only_flag
	bw.writeBit(1) // direct_8x8_inference_flag

	// crop offsets are in chroma sample units
	cropRight := (g.mbW*16 - g.width) / 2
	cropBottom := (g.mbH*16 - g.height) / 2
	if cropRight > 0 || cropBottom > 0 {
		bw.writeBit(1)
		bw.writeUE(0)
		bw.writeUE(uint32(cropRight))
		bw.writeUE(0)
		bw.writeUE(uint32(cropBottom))
	} else {
		bw.writeBit(0)
	}

	bw.writeBit(0) // vui_parameters_present_flag
	bw.trailingBits()

	return appendNALU(dst, nalSPS, 3, bw.data)
}

// appendPPS appends a CAVLC picture parameter set NAL unit.
func appendPPS(dst []byte, bw *bitWriter) []byte {
	bw.reset()

	bw.writeUE(0)  // pic_parameter_set_id
	bw.writeUE(0)  // seq_parameter_set_id
	bw.writeBit(0) // entropy_coding_mode_flag
	bw.writeBit(0) // bottom_field_pic_order_in_frame_present_flag
	bw.writeUE(0)  // num_slice_groups_minus1
	bw.writeUE(0)  // num_ref_idx_l0_default_active_minus1
	bw.writeUE(0)  // num_ref_idx_l1_default_active_minus1
	bw.writeBit(0) // weighted_pred_flag
	bw.writeBits(0, 2)
	bw.writeSE(initialQP - 26)
	bw.writeSE(0)  // pic_init_qs_minus26
	bw.writeSE(0)  // chroma_qp_index_offset
	bw.writeBit(1) // deblocking_filter_control_present_flag
	bw.writeBit(0) // constrained_intra_pred_flag
	bw.writeBit(0) // redundant_pic_cnt_present_flag
	bw.trailingBits()

	return appendNALU(dst, nalPPS, 3, bw.data)
}

// writeIDRSliceHeader writes the header of an I slice in an IDR picture.
func writeIDRSliceHeader(bw *bitWriter, idrPicID uint32) {
	bw.writeUE(0) // first_mb_in_slice
	bw.writeUE(sliceTypeI)
	bw.writeUE(0)      // pic_parameter_set_id
	bw.writeBits(0, 4) // frame_num
	bw.writeUE(idrPicID)
	bw.writeBit(0) // no_output_of_prior_pics_flag
	bw.writeBit(0) // long_term_reference_flag
	bw.writeSE(0)  // slice_qp_delta
	bw.writeUE(1)  // disable_deblocking_filter_idc
}
